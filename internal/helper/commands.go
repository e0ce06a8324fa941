package helper

import (
	"fmt"

	"github.com/danlynn/compare-with-snapshot/internal/export"
	"github.com/danlynn/compare-with-snapshot/internal/fs"
	"github.com/danlynn/compare-with-snapshot/internal/label"
	"github.com/danlynn/compare-with-snapshot/internal/snaperr"
	"github.com/danlynn/compare-with-snapshot/internal/snapshot"
)

func requireRegular(f fs.FS, path, what string) error {
	if path == "" || !fs.IsRegular(f, path) {
		return fmt.Errorf("%s %q is not an existing regular file: %w", what, path, snaperr.ErrValidationFailed)
	}
	return nil
}

func requireLabel(l string) error {
	if !label.Valid(l) {
		return fmt.Errorf("label %q is malformed: %w", l, snaperr.ErrValidationFailed)
	}
	return nil
}

type listDiffering struct {
	finder *snapshot.Finder
	fs     fs.FS
}

func (c *listDiffering) Name() string  { return CmdListDiffering }
func (c *listDiffering) Usage() string { return "<local-path>" }
func (c *listDiffering) Brief() string {
	return "List snapshots in which the file's content differs from the next retained version"
}

func (c *listDiffering) Run(ctx *Context) (any, error) {
	path := ctx.Args[0]
	if err := requireRegular(c.fs, path, "local path"); err != nil {
		return nil, err
	}

	list, err := c.finder.FilterDiffering(path)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(list))
	for _, e := range list {
		records = append(records, Record{Label: e.Label, Pathname: e.Path, ID: e.ID})
	}
	return records, nil
}

type exportTemp struct {
	finder *snapshot.Finder
	store  *export.Store
	fs     fs.FS
}

func (c *exportTemp) Name() string  { return CmdExportTemp }
func (c *exportTemp) Usage() string { return "<label> <snapshot-path>" }
func (c *exportTemp) Brief() string {
	return "Copy a snapshot copy into the shared temp area"
}

func (c *exportTemp) Run(ctx *Context) (any, error) {
	l, src := ctx.Args[0], ctx.Args[1]
	if err := requireLabel(l); err != nil {
		return nil, err
	}
	if err := requireRegular(c.fs, src, "snapshot path"); err != nil {
		return nil, err
	}
	if _, err := c.finder.SnapshotOf(src); err != nil {
		return nil, err
	}

	path, err := c.store.Create(ctx, l, src)
	if err != nil {
		return nil, err
	}
	return ExportResult{Path: path}, nil
}

type removeTemp struct {
	store *export.Store
	fs    fs.FS
}

func (c *removeTemp) Name() string  { return CmdRemoveTemp }
func (c *removeTemp) Usage() string { return "<label> <tempfile-path>" }
func (c *removeTemp) Brief() string {
	return "Remove an export created by export-temp"
}

func (c *removeTemp) Run(ctx *Context) (any, error) {
	l, path := ctx.Args[0], ctx.Args[1]
	if err := requireLabel(l); err != nil {
		return nil, err
	}
	if err := requireRegular(c.fs, path, "tempfile path"); err != nil {
		return nil, err
	}

	return nil, c.store.Remove(l, path)
}
