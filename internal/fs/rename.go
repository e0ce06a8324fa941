package fs

import (
	"context"
	"os"
)

// wraps os.Rename with retry logic.
// It provides an atomic rename used to publish a finished export directory.

func renameWithRetry(ctx context.Context, oldPath, newPath string) error {
	return retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}
