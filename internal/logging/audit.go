package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	auditFileName = "compare-with-snapshot.log"
	auditFilePerm = 0o644
)

// Audit is the append-only log file shared by every helper invocation.
// It is opened once per process and must be closed on exit.
type Audit struct {
	*slog.Logger
	file *os.File
	path string
}

// OpenAudit creates dir if needed and opens the log file in append mode.
func OpenAudit(dir string, level slog.Level) (*Audit, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, auditFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, auditFilePerm)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	w := &lockedWriter{file: f, lock: flock.New(path + ".lock")}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return &Audit{Logger: slog.New(h), file: f, path: path}, nil
}

// With returns a logger that adds args to every record.
func (a *Audit) With(args ...any) Logger {
	return a.Logger.With(args...)
}

func (a *Audit) Path() string { return a.path }

func (a *Audit) Close() error {
	return a.file.Close()
}

// lockedWriter holds an exclusive flock for every record so concurrent helper
// processes never interleave partial lines.
type lockedWriter struct {
	file *os.File
	lock *flock.Flock
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	if err := w.lock.Lock(); err != nil {
		return 0, fmt.Errorf("locking log file: %w", err)
	}
	defer func() {
		_ = w.lock.Unlock()
	}()
	return w.file.Write(p)
}
