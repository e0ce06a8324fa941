package snapshot

import "fmt"

// FilterDiffering reduces Enumerate(path) to the snapshots where the content
// changed. The live file acts as the newest version: walking newest → oldest,
// a copy is kept only when it differs from the last kept copy (initially the
// live file). The result keeps the ascending order of Enumerate.
func (f *Finder) FilterDiffering(path string) (List, error) {
	abs, err := resolveExisting(path)
	if err != nil {
		return nil, err
	}

	all, err := f.Enumerate(abs)
	if err != nil {
		return nil, err
	}

	cmp := f.comparator()
	lastRef := abs

	var kept List
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]

		same, err := cmp.Identical(e.Path, lastRef)
		if err != nil {
			return nil, fmt.Errorf("comparing snapshot %s: %w", e.ID, err)
		}
		if same {
			continue
		}

		kept = append(kept, e)
		lastRef = e.Path
	}

	// Restore oldest → newest
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}

	return kept, nil
}
