package snapshot

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/danlynn/compare-with-snapshot/internal/fs"
	"github.com/danlynn/compare-with-snapshot/internal/label"
)

// Enumerate lists every snapshot holding a copy of path, oldest first.
//
// Snapshots without a copy are skipped. Unreadable metadata fails the whole
// listing because the order could no longer be trusted.
func (f *Finder) Enumerate(path string) (List, error) {
	abs, err := resolveExisting(path)
	if err != nil {
		return nil, err
	}

	root, err := f.Locate(abs)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(filepath.Dir(string(root)), abs)
	if err != nil {
		return nil, fmt.Errorf("relative path of %s: %w", abs, err)
	}

	children, err := f.fs.ReadDir(string(root))
	if err != nil {
		return nil, fmt.Errorf("reading snapshot root: %w", err)
	}

	var list List
	for _, child := range children {
		if !child.IsDir() {
			continue
		}

		snapDir := filepath.Join(string(root), child.Name())
		candidate := filepath.Join(snapDir, f.layout.Subtree, rel)
		if !fs.IsRegular(f.fs, candidate) {
			f.log.Debug("no copy in snapshot", "snapshot", child.Name(), "path", candidate)
			continue
		}

		created, err := f.readCreated(filepath.Join(snapDir, f.layout.MetadataFile))
		if err != nil {
			return nil, err
		}

		list = append(list, Entry{
			ID:    child.Name(),
			Time:  created,
			Label: label.Render(created),
			Path:  candidate,
		})
	}

	// Sort oldest → newest
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Time.Equal(list[j].Time) {
			return list[i].Time.Before(list[j].Time)
		}
		return idLess(list[i].ID, list[j].ID)
	})

	return list, nil
}
