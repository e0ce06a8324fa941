package export

import (
	"context"
	"errors"
	"fmt"
)

// Exporter is the pair of privileged operations With needs.
type Exporter interface {
	ExportTemp(ctx context.Context, label, snapshotPath string) (string, error)
	RemoveTemp(ctx context.Context, label, tempPath string) error
}

// With exports snapshotPath, hands the readable copy to fn and removes the
// export on every way out of fn, panics included. A failed removal is joined
// to fn's error.
func With(ctx context.Context, e Exporter, label, snapshotPath string, fn func(tempPath string) error) (err error) {
	tempPath, err := e.ExportTemp(ctx, label, snapshotPath)
	if err != nil {
		return fmt.Errorf("exporting snapshot copy: %w", err)
	}

	defer func() {
		// Removal must run even when ctx is already canceled.
		if rmErr := e.RemoveTemp(context.WithoutCancel(ctx), label, tempPath); rmErr != nil {
			err = errors.Join(err, fmt.Errorf("removing export: %w", rmErr))
		}
	}()

	return fn(tempPath)
}
