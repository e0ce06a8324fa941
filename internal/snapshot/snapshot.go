// Package snapshot finds the historical copies of a file inside snapper-style
// snapshot storage and reduces them to the copies where the content changed.
package snapshot

import (
	"strconv"
	"time"

	"github.com/danlynn/compare-with-snapshot/internal/compare"
	"github.com/danlynn/compare-with-snapshot/internal/config"
	"github.com/danlynn/compare-with-snapshot/internal/fs"
	"github.com/danlynn/compare-with-snapshot/internal/logging"
)

// Root is the directory holding every snapshot of one volume,
// e.g. /home/.snapshots.
type Root string

// Entry is one historical copy of the target file.
type Entry struct {
	ID    string    // snapshot directory name, stable across invocations
	Time  time.Time // creation instant from the snapshot metadata
	Label string    // Time rendered for display
	Path  string    // absolute path of the copy inside the snapshot
}

// List is ordered by Time ascending.
type List []Entry

// Finder runs locate, enumerate and filter against one filesystem layout.
type Finder struct {
	layout config.LayoutConfig
	fs     fs.FS
	log    logging.Logger
}

// New creates a finder. A nil filesystem means the OS filesystem.
func New(layout config.LayoutConfig, log logging.Logger, filesystem fs.FS) *Finder {
	if filesystem == nil {
		filesystem = fs.New()
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &Finder{
		layout: layout,
		fs:     filesystem,
		log:    log,
	}
}

func (f *Finder) comparator() *compare.Comparator {
	return compare.New(f.fs)
}

// idLess orders snapshot ids numerically when both are numbers.
func idLess(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
