// Package fs defines the filesystem abstraction used by compare-with-snapshot.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"io"
	"os"
	"time"
)

type FileInfo struct {
	Path    string
	Size    int64
	MTime   time.Time
	Mode    os.FileMode
	Inode   uint64
	Device  uint64
	UID     int // -1 when the platform has no owner ids
	Regular bool
	Dir     bool
	Symlink bool
}

// SameFile reports whether both infos describe the same inode on the same device.
func (fi FileInfo) SameFile(other FileInfo) bool {
	return fi.Inode != 0 && fi.Inode == other.Inode && fi.Device == other.Device
}

type FS interface {
	Stat(path string) (FileInfo, error)
	Lstat(path string) (FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	ReadFile(path string) ([]byte, error)
	Open(path string) (io.ReadCloser, error)
	CopyFile(ctx context.Context, src, dst string) error
	Rename(ctx context.Context, oldPath, newPath string) error
	MkdirAll(path string) error
	MkdirTemp(dir, pattern string) (string, error)
	Chown(path string, uid int) error
	RemoveAll(path string) error
}

// IsRegular reports whether path exists and is a regular file.
func IsRegular(f FS, path string) bool {
	fi, err := f.Stat(path)
	return err == nil && fi.Regular
}

// IsDir reports whether path exists and is a directory.
func IsDir(f FS, path string) bool {
	fi, err := f.Stat(path)
	return err == nil && fi.Dir
}
