package helperclient_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danlynn/compare-with-snapshot/internal/config"
	"github.com/danlynn/compare-with-snapshot/internal/export"
	"github.com/danlynn/compare-with-snapshot/internal/helper"
	"github.com/danlynn/compare-with-snapshot/internal/helperclient"
	"github.com/danlynn/compare-with-snapshot/internal/snaperr"
	"github.com/danlynn/compare-with-snapshot/internal/snapshot"
	"github.com/danlynn/compare-with-snapshot/internal/snapshot/snapshottest"
)

const (
	wantHelperEnv = "CWS_WANT_HELPER_PROCESS"
	tempRootEnv   = "CWS_HELPER_TEMP_ROOT"
)

// TestHelperProcess is not a real test: it is the helper binary the client
// tests spawn, running in a child process.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(wantHelperEnv) != "1" {
		return
	}

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}

	finder := snapshot.New(config.Default().Layout, nil, nil)
	store := export.NewStore(os.Getenv(tempRootEnv), nil, nil)
	os.Exit(helper.New(finder, store, nil, nil).Run(context.Background(), args, os.Stdout))
}

func newClient(t *testing.T) (*helperclient.Client, string) {
	t.Helper()
	tempRoot, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	t.Setenv(wantHelperEnv, "1")
	t.Setenv(tempRootEnv, tempRoot)

	return helperclient.New([]string{os.Args[0], "-test.run=^TestHelperProcess$", "--"}, nil), tempRoot
}

func TestClient_RoundTrip(t *testing.T) {
	c, tempRoot := newClient(t)

	v := snapshottest.NewVolume(t)
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	live := v.Live("a.txt", "live")
	v.Snapshot("1", base, map[string]string{"a.txt": "old"})
	v.Snapshot("2", base.Add(time.Hour), map[string]string{"a.txt": "live"})

	ctx := context.Background()

	records, err := c.ListDiffering(ctx, live)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID)

	var viewed string
	err = export.With(ctx, c, records[0].Label, records[0].Pathname, func(p string) error {
		data, err := os.ReadFile(p)
		viewed = string(data)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "old", viewed)

	left, err := os.ReadDir(filepath.Join(tempRoot, config.AppName))
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestClient_HelperErrorIsVerbatim(t *testing.T) {
	c, _ := newClient(t)

	_, err := c.ExportTemp(context.Background(), "not a label", "/etc/passwd")
	require.Error(t, err)
	assert.ErrorIs(t, err, snaperr.ErrSubprocessFailed)

	var herr *helperclient.Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, helper.CmdExportTemp, herr.Command)
	assert.Equal(t, 1, herr.ExitCode)
	assert.Contains(t, herr.Message, "label")
}

func TestClient_MissingBinary(t *testing.T) {
	c := helperclient.New([]string{filepath.Join(t.TempDir(), "no-such-helper")}, nil)

	_, err := c.ListDiffering(context.Background(), "/x")
	assert.ErrorIs(t, err, snaperr.ErrSubprocessFailed)
}

func TestClient_NoCommand(t *testing.T) {
	c := helperclient.New(nil, nil)

	err := c.RemoveTemp(context.Background(), "x", "y")
	assert.ErrorIs(t, err, snaperr.ErrSubprocessFailed)
}

func TestClient_GarbageAnswer(t *testing.T) {
	c := helperclient.New([]string{"/bin/sh", "-c", "echo not-json", "sh"}, nil)

	_, err := c.ListDiffering(context.Background(), "/x")
	assert.ErrorIs(t, err, snaperr.ErrSubprocessFailed)
}
