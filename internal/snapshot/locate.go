package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danlynn/compare-with-snapshot/internal/fs"
	"github.com/danlynn/compare-with-snapshot/internal/snaperr"
)

// Locate returns the snapshot root of the volume nearest to path.
// path does not need to exist as long as some ancestor does.
func (f *Finder) Locate(path string) (Root, error) {
	abs, err := resolve(path)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, f.layout.SnapshotDir)
		if fs.IsDir(f.fs, candidate) {
			return Root(candidate), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}

	return "", fmt.Errorf("%s: %w", abs, snaperr.ErrSnapshotsUnconfigured)
}

// resolve returns the canonical absolute form of path, following symlinks.
// Missing trailing components are re-appended to the nearest real ancestor.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	parent := filepath.Dir(abs)
	if parent == abs {
		return abs, nil
	}

	resolvedParent, err := resolve(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(abs)), nil
}

// resolveExisting is resolve for paths that must exist.
func resolveExisting(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", abs, snaperr.ErrNotFound)
	}
	return resolved, err
}

// SnapshotOf returns the id of the snapshot whose copy tree contains path,
// i.e. path has the shape <volume>/<snapshotDir>/<id>/<subtree>/<rel>.
func (f *Finder) SnapshotOf(path string) (string, error) {
	abs, err := resolveExisting(path)
	if err != nil {
		return "", err
	}

	parts := strings.Split(filepath.ToSlash(abs), "/")
	for i := 0; i+3 < len(parts); i++ {
		if parts[i] == f.layout.SnapshotDir && parts[i+1] != "" && parts[i+2] == f.layout.Subtree {
			return parts[i+1], nil
		}
	}

	return "", fmt.Errorf("%s is not inside a snapshot: %w", abs, snaperr.ErrValidationFailed)
}
