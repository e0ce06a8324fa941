// Package export publishes snapshot copies where unprivileged tools can read
// them, and removes them again.
//
// Store is the privileged half: it copies and deletes under the shared temp
// area. With is the caller half: it brackets a view step with the helper's
// export-temp and remove-temp commands.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danlynn/compare-with-snapshot/internal/config"
	"github.com/danlynn/compare-with-snapshot/internal/fs"
	"github.com/danlynn/compare-with-snapshot/internal/label"
	"github.com/danlynn/compare-with-snapshot/internal/logging"
	"github.com/danlynn/compare-with-snapshot/internal/snaperr"
)

// Store owns <tempRoot>/compare-with-snapshot/<sanitized label>/<basename>.
type Store struct {
	base  string
	owner int // uid that receives exports, -1 keeps the helper's own
	fs    fs.FS
	log   logging.Logger
}

// NewStore creates a store rooted under tempRoot. A nil filesystem means the OS filesystem.
func NewStore(tempRoot string, log logging.Logger, filesystem fs.FS) *Store {
	if filesystem == nil {
		filesystem = fs.New()
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &Store{
		base:  filepath.Join(tempRoot, config.AppName),
		owner: -1,
		fs:    filesystem,
		log:   log,
	}
}

// SetOwner makes every export owned by uid, so only that user can read it.
// A negative uid keeps the helper's own.
func (s *Store) SetOwner(uid int) {
	s.owner = uid
}

// DirFor is the deterministic export directory of a label.
func (s *Store) DirFor(l string) string {
	return filepath.Join(s.base, label.Sanitize(l))
}

// Create copies src into a fresh export directory for label and returns the
// path of the copy. The copy is staged in a hidden directory and renamed into
// place, so a reader never sees a partial file.
func (s *Store) Create(ctx context.Context, l, src string) (string, error) {
	if !label.Valid(l) {
		return "", fmt.Errorf("label %q: %w", l, snaperr.ErrValidationFailed)
	}

	if err := s.ensureBase(); err != nil {
		return "", err
	}

	finalDir := s.DirFor(l)
	name := filepath.Base(src)

	// Unique 0700 staging dir inside a base nobody else can write to.
	tmpDir, err := s.fs.MkdirTemp(s.base, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating tmp dir: %w", err)
	}
	s.log.Debug("export destinations", "tmpDir", tmpDir, "finalDir", finalDir)

	if err := s.fs.CopyFile(ctx, src, filepath.Join(tmpDir, name)); err != nil {
		_ = s.fs.RemoveAll(tmpDir)
		return "", fmt.Errorf("copying %s: %w", name, err)
	}

	if err := s.handOver(tmpDir, name); err != nil {
		_ = s.fs.RemoveAll(tmpDir)
		return "", err
	}

	// A stale export for the same label is replaced.
	if err := s.fs.RemoveAll(finalDir); err != nil {
		_ = s.fs.RemoveAll(tmpDir)
		return "", fmt.Errorf("clearing previous export: %w", err)
	}

	// Finalize atomically
	if err := s.fs.Rename(ctx, tmpDir, finalDir); err != nil {
		_ = s.fs.RemoveAll(tmpDir)
		return "", fmt.Errorf("finalizing export: %w", err)
	}

	return filepath.Join(finalDir, name), nil
}

// Remove deletes the export directory of label. path must be the file Create
// returned for that label; anything else is refused.
func (s *Store) Remove(l, path string) error {
	if !label.Valid(l) {
		return fmt.Errorf("label %q: %w", l, snaperr.ErrValidationFailed)
	}

	dir := s.DirFor(l)
	if filepath.Dir(filepath.Clean(path)) != dir {
		return fmt.Errorf("%s is not an export of %q: %w", path, l, snaperr.ErrValidationFailed)
	}
	if !fs.IsRegular(s.fs, path) {
		return fmt.Errorf("%s is not a regular file: %w", path, snaperr.ErrValidationFailed)
	}

	if err := s.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing export: %w", err)
	}
	return nil
}

// handOver gives the staged copy and its directory to the store owner.
func (s *Store) handOver(tmpDir, name string) error {
	if s.owner < 0 {
		return nil
	}
	for _, p := range []string{filepath.Join(tmpDir, name), tmpDir} {
		if err := s.fs.Chown(p, s.owner); err != nil {
			return fmt.Errorf("handing export to uid %d: %w", s.owner, err)
		}
	}
	return nil
}

var errUnsafeBase = errors.New("export base is not a private directory")

// ensureBase creates the shared base directory and refuses one that another
// user could tamper with: a symlink, a directory owned by someone else, or one
// that is group or world writable.
func (s *Store) ensureBase() error {
	if err := s.fs.MkdirAll(s.base); err != nil {
		return fmt.Errorf("creating export base: %w", err)
	}

	fi, err := s.fs.Lstat(s.base)
	if err != nil {
		return err
	}
	switch {
	case fi.Symlink || !fi.Dir:
		return fmt.Errorf("%s is a symlink or not a directory: %w", s.base, errUnsafeBase)
	case fi.UID != os.Geteuid():
		return fmt.Errorf("%s is owned by uid %d: %w", s.base, fi.UID, errUnsafeBase)
	case fi.Mode.Perm()&0o022 != 0:
		return fmt.Errorf("%s has mode %s: %w", s.base, fi.Mode.Perm(), errUnsafeBase)
	}
	return nil
}
