// Package helperclient runs the privileged helper as a subprocess and decodes
// its single-record answers. It never touches snapshot storage itself.
package helperclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/danlynn/compare-with-snapshot/internal/helper"
	"github.com/danlynn/compare-with-snapshot/internal/logging"
	"github.com/danlynn/compare-with-snapshot/internal/snaperr"
)

// Error is a failure reported by the helper. Message is the helper's error
// payload verbatim.
type Error struct {
	Command  string
	ExitCode int
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

func (e *Error) Unwrap() error { return snaperr.ErrSubprocessFailed }

// Client invokes the helper through a fixed command line such as
// ["pkexec", "/usr/local/libexec/snapshot-helper"].
type Client struct {
	command []string
	log     logging.Logger
}

func New(command []string, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop{}
	}
	return &Client{command: command, log: log}
}

// ListDiffering returns the snapshots where path's content changed, oldest first.
func (c *Client) ListDiffering(ctx context.Context, path string) ([]helper.Record, error) {
	out, err := c.run(ctx, helper.CmdListDiffering, path)
	if err != nil {
		return nil, err
	}

	var records []helper.Record
	if err := json.Unmarshal(out, &records); err != nil {
		return nil, c.protocolError(helper.CmdListDiffering, err)
	}
	return records, nil
}

// ExportTemp asks the helper for a readable copy of snapshotPath.
func (c *Client) ExportTemp(ctx context.Context, label, snapshotPath string) (string, error) {
	out, err := c.run(ctx, helper.CmdExportTemp, label, snapshotPath)
	if err != nil {
		return "", err
	}

	var res helper.ExportResult
	if err := json.Unmarshal(out, &res); err != nil {
		return "", c.protocolError(helper.CmdExportTemp, err)
	}
	if res.Path == "" {
		return "", c.protocolError(helper.CmdExportTemp, errors.New("empty path"))
	}
	return res.Path, nil
}

// RemoveTemp deletes an export made by ExportTemp.
func (c *Client) RemoveTemp(ctx context.Context, label, tempPath string) error {
	_, err := c.run(ctx, helper.CmdRemoveTemp, label, tempPath)
	return err
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if len(c.command) == 0 {
		return nil, fmt.Errorf("no helper command configured: %w", snaperr.ErrSubprocessFailed)
	}

	argv := append(append([]string(nil), c.command[1:]...), args...)
	cmd := exec.CommandContext(ctx, c.command[0], argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.log.Debug("running helper", "command", args[0], "args", args[1:])
	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("starting helper: %w: %v", snaperr.ErrSubprocessFailed, err)
	}

	herr := &Error{Command: args[0], ExitCode: exitErr.ExitCode(), Message: failureMessage(stdout.Bytes(), stderr.Bytes(), err)}
	c.log.Error("helper failed", "command", args[0], "exit", herr.ExitCode, "error", herr.Message)
	return nil, herr
}

// failureMessage prefers the helper's {"error": ...} record, then its stderr.
func failureMessage(stdout, stderr []byte, err error) string {
	var rec helper.ErrorRecord
	if json.Unmarshal(stdout, &rec) == nil && rec.Error != "" {
		return rec.Error
	}
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return msg
	}
	return err.Error()
}

func (c *Client) protocolError(command string, err error) error {
	c.log.Error("unreadable helper answer", "command", command, "error", err)
	return fmt.Errorf("%s: unreadable answer: %w: %v", command, snaperr.ErrSubprocessFailed, err)
}
