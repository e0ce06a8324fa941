// Package snaperr holds the error taxonomy shared by the helper and its caller.
package snaperr

import "errors"

var (
	ErrNotFound              = errors.New("file not found")
	ErrSnapshotsUnconfigured = errors.New("snapshots are not configured for this volume")
	ErrMetadataMalformed     = errors.New("snapshot metadata malformed")
	ErrValidationFailed      = errors.New("validation failed")
	ErrSubprocessFailed      = errors.New("privileged helper failed")
)
