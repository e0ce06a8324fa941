package fs

import (
	"context"
	"io"
	"os"
)

// OSFS is the concrete implementation of FS backed by the local OS filesystem.
// Platform-specific details (such as inode extraction) are handled in build-tagged files.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fileInfo(path, st), nil
}

// Lstat is Stat without following a final symlink.
func (o *OSFS) Lstat(path string) (FileInfo, error) {
	st, err := os.Lstat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fileInfo(path, st), nil
}

func fileInfo(path string, st os.FileInfo) FileInfo {
	ino, dev, uid := statOf(st)
	return FileInfo{
		Path:    path,
		Size:    st.Size(),
		MTime:   st.ModTime(),
		Mode:    st.Mode(),
		Inode:   ino,
		Device:  dev,
		UID:     uid,
		Regular: st.Mode().IsRegular(),
		Dir:     st.IsDir(),
		Symlink: st.Mode()&os.ModeSymlink != 0,
	}
}

func (o *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

func (o *OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (o *OSFS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (o *OSFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

// MkdirTemp creates a new directory with mode 0700 and a unique name.
func (o *OSFS) MkdirTemp(dir, pattern string) (string, error) {
	return os.MkdirTemp(dir, pattern)
}

// Chown changes the owner of path without following a final symlink.
// The group is left unchanged.
func (o *OSFS) Chown(path string, uid int) error {
	return os.Lchown(path, uid, -1)
}

func (o *OSFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (o *OSFS) CopyFile(ctx context.Context, src, dst string) error {
	return copyWithRetry(ctx, o, src, dst)
}

func (o *OSFS) Rename(ctx context.Context, oldPath, newPath string) error {
	return renameWithRetry(ctx, oldPath, newPath)
}
