// Package snapshottest builds snapper-style volumes on disk for tests.
package snapshottest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danlynn/compare-with-snapshot/internal/config"
)

// Volume is a temporary directory laid out like a snapshotted volume.
type Volume struct {
	t      testing.TB
	Root   string
	Layout config.LayoutConfig
}

// NewVolume creates an empty volume with a snapshot directory.
func NewVolume(t testing.TB) *Volume {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	v := &Volume{t: t, Root: dir, Layout: config.Default().Layout}
	require.NoError(t, os.MkdirAll(v.SnapshotRoot(), 0o755))
	return v
}

func (v *Volume) SnapshotRoot() string {
	return filepath.Join(v.Root, v.Layout.SnapshotDir)
}

// Live writes the live copy of rel and returns its absolute path.
func (v *Volume) Live(rel, content string) string {
	v.t.Helper()
	return v.write(filepath.Join(v.Root, rel), content)
}

// Snapshot creates snapshot id taken at created. files maps relative paths to content.
func (v *Volume) Snapshot(id string, created time.Time, files map[string]string) string {
	v.t.Helper()

	dir := filepath.Join(v.SnapshotRoot(), id)
	require.NoError(v.t, os.MkdirAll(filepath.Join(dir, v.Layout.Subtree), 0o755))
	v.Metadata(id, fmt.Sprintf(`<?xml version="1.0"?>
<snapshot>
  <type>single</type>
  <num>%s</num>
  <date>%s</date>
  <cleanup>timeline</cleanup>
</snapshot>
`, id, created.UTC().Format("2006-01-02 15:04:05")))

	for rel, content := range files {
		v.write(v.CopyPath(id, rel), content)
	}
	return dir
}

// Metadata overwrites the metadata document of snapshot id.
func (v *Volume) Metadata(id, body string) {
	v.t.Helper()
	v.write(filepath.Join(v.SnapshotRoot(), id, v.Layout.MetadataFile), body)
}

// CopyPath is where snapshot id keeps its copy of rel.
func (v *Volume) CopyPath(id, rel string) string {
	return filepath.Join(v.SnapshotRoot(), id, v.Layout.Subtree, rel)
}

func (v *Volume) write(path, content string) string {
	v.t.Helper()
	require.NoError(v.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(v.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
