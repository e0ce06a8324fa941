//go:build unix

package fs

import (
	"os"
	"syscall"
)

// inode_unix.go extracts inode, device and owner from syscall.Stat_t.
// Inode and device detect source changes during copy and let the comparator
// skip reading two names for the same file. The owner guards the shared
// export base.

// noFollow makes opening an export destination fail on a planted symlink.
const noFollow = syscall.O_NOFOLLOW

func statOf(info os.FileInfo) (ino, dev uint64, uid int) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, -1
	}
	return st.Ino, uint64(st.Dev), int(st.Uid) //nolint:unconvert // Dev is int32 on some platforms
}
