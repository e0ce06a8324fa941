package helper_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danlynn/compare-with-snapshot/internal/export"
	"github.com/danlynn/compare-with-snapshot/internal/helper"
	"github.com/danlynn/compare-with-snapshot/internal/label"
	"github.com/danlynn/compare-with-snapshot/internal/snapshot"
	"github.com/danlynn/compare-with-snapshot/internal/snapshot/snapshottest"
)

type env struct {
	vol      *snapshottest.Volume
	tempRoot string
	store    *export.Store
	h        *helper.Helper
	live     string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	v := snapshottest.NewVolume(t)
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	live := v.Live("docs/notes.txt", "C")
	v.Snapshot("1", base.Add(1*time.Hour), map[string]string{"docs/notes.txt": "A"})
	v.Snapshot("2", base.Add(2*time.Hour), map[string]string{"docs/notes.txt": "A"})
	v.Snapshot("3", base.Add(3*time.Hour), map[string]string{"docs/notes.txt": "B"})

	tempRoot, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	finder := snapshot.New(v.Layout, nil, nil)
	store := export.NewStore(tempRoot, nil, nil)

	return &env{
		vol:      v,
		tempRoot: tempRoot,
		store:    store,
		h:        helper.New(finder, store, nil, nil),
		live:     live,
	}
}

func (e *env) run(args ...string) (int, string) {
	var out bytes.Buffer
	code := e.h.Run(context.Background(), args, &out)
	return code, out.String()
}

func errorOf(t *testing.T, out string) string {
	t.Helper()
	var rec helper.ErrorRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec), out)
	require.NotEmpty(t, rec.Error)
	return rec.Error
}

func TestListDiffering(t *testing.T) {
	e := newEnv(t)

	code, out := e.run(helper.CmdListDiffering, e.live)
	require.Equal(t, 0, code, out)

	var records []helper.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)

	assert.Equal(t, "2", records[0].ID)
	assert.Equal(t, e.vol.CopyPath("2", "docs/notes.txt"), records[0].Pathname)
	assert.True(t, label.Valid(records[0].Label))
	assert.Equal(t, "3", records[1].ID)
}

func TestListDiffering_EmptyIsArray(t *testing.T) {
	e := newEnv(t)
	other := e.vol.Live("docs/other.txt", "x")

	code, out := e.run(helper.CmdListDiffering, other)
	require.Equal(t, 0, code)
	assert.JSONEq(t, "[]", out)
}

func TestListDiffering_Validation(t *testing.T) {
	e := newEnv(t)

	cases := map[string][]string{
		"no args":       {helper.CmdListDiffering},
		"too many args": {helper.CmdListDiffering, e.live, e.live},
		"missing file":  {helper.CmdListDiffering, filepath.Join(e.vol.Root, "nope")},
		"directory":     {helper.CmdListDiffering, e.vol.Root},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code, out := e.run(args...)
			assert.Equal(t, 1, code)
			errorOf(t, out)
		})
	}
}

func TestExportThenRemove(t *testing.T) {
	e := newEnv(t)
	src := e.vol.CopyPath("3", "docs/notes.txt")
	l := "Fri 03/01  3:00 PM"

	code, out := e.run(helper.CmdExportTemp, l, src)
	require.Equal(t, 0, code, out)

	var res helper.ExportResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "notes.txt", filepath.Base(res.Path))

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "B", string(data))

	code, out = e.run(helper.CmdRemoveTemp, l, res.Path)
	require.Equal(t, 0, code, out)
	assert.Empty(t, out)

	_, err = os.Stat(filepath.Dir(res.Path))
	assert.True(t, os.IsNotExist(err))
}

func TestExportTemp_Validation(t *testing.T) {
	e := newEnv(t)
	src := e.vol.CopyPath("3", "docs/notes.txt")
	good := "Fri 03/01  3:00 PM"

	cases := map[string][]string{
		"bad label":          {helper.CmdExportTemp, "../../etc/x", src},
		"label with slash":   {helper.CmdExportTemp, "Fri 03/01 3:00 PM/..", src},
		"missing source":     {helper.CmdExportTemp, good, filepath.Join(e.vol.Root, "nope")},
		"directory source":   {helper.CmdExportTemp, good, e.vol.SnapshotRoot()},
		"outside a snapshot": {helper.CmdExportTemp, good, e.live},
		"missing args":       {helper.CmdExportTemp, good},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code, out := e.run(args...)
			assert.Equal(t, 1, code)
			errorOf(t, out)

			_, err := os.Stat(filepath.Join(e.tempRoot, "compare-with-snapshot"))
			assert.True(t, os.IsNotExist(err), "the temp area must stay untouched")
		})
	}
}

func TestRemoveTemp_Validation(t *testing.T) {
	e := newEnv(t)
	good := "Fri 03/01  3:00 PM"

	code, out := e.run(helper.CmdRemoveTemp, "bogus", e.live)
	assert.Equal(t, 1, code)
	errorOf(t, out)

	code, out = e.run(helper.CmdRemoveTemp, good, filepath.Join(e.tempRoot, "nope"))
	assert.Equal(t, 1, code)
	errorOf(t, out)

	// An existing file that is not an export of this label is refused and survives.
	code, out = e.run(helper.CmdRemoveTemp, good, e.live)
	assert.Equal(t, 1, code)
	errorOf(t, out)
	_, err := os.Stat(e.live)
	assert.NoError(t, err)
}

func TestUnknownCommand(t *testing.T) {
	e := newEnv(t)

	code, out := e.run("rm-rf", "/")
	assert.Equal(t, 1, code)
	assert.Contains(t, errorOf(t, out), "unknown command")

	code, out = e.run()
	assert.Equal(t, 1, code)
	errorOf(t, out)
}

func TestCommands(t *testing.T) {
	e := newEnv(t)

	var names []string
	for _, c := range e.h.Commands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{helper.CmdExportTemp, helper.CmdListDiffering, helper.CmdRemoveTemp}, names)
}

func TestListDiffering_ConcurrentFilesDoNotInterfere(t *testing.T) {
	e := newEnv(t)
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	other := e.vol.Live("docs/other.txt", "Z")
	for i, c := range []string{"X", "Y", "Y", "X"} {
		id := fmt.Sprintf("%d", 10+i)
		e.vol.Snapshot(id, base.Add(time.Duration(10+i)*time.Hour), map[string]string{"docs/other.txt": c})
	}

	files := []string{e.live, other}
	want := make([]string, len(files))
	for i, f := range files {
		code, out := e.run(helper.CmdListDiffering, f)
		require.Equal(t, 0, code, out)
		want[i] = out
	}

	const rounds = 8
	got := make([][]string, rounds)
	var wg sync.WaitGroup
	for r := 0; r < rounds; r++ {
		got[r] = make([]string, len(files))
		for i, f := range files {
			wg.Add(1)
			go func(r, i int, f string) {
				defer wg.Done()
				var out bytes.Buffer
				if e.h.Run(context.Background(), []string{helper.CmdListDiffering, f}, &out) != 0 {
					got[r][i] = "failed: " + out.String()
					return
				}
				got[r][i] = out.String()
			}(r, i, f)
		}
	}
	wg.Wait()

	for r := range got {
		assert.Equal(t, want, got[r])
	}
	assert.NotEqual(t, want[0], want[1])
}
