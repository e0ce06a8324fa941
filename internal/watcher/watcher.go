// Package watcher keeps the differing-snapshot list of one file current.
// It re-lists when the live file changes and on a schedule, because new
// snapshots appear without the file changing.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/danlynn/compare-with-snapshot/internal/config"
	"github.com/danlynn/compare-with-snapshot/internal/fsprobe"
	"github.com/danlynn/compare-with-snapshot/internal/helper"
	"github.com/danlynn/compare-with-snapshot/internal/logging"
	"github.com/danlynn/compare-with-snapshot/internal/mailbox"
)

// Lister is the privileged list-differing call.
type Lister interface {
	ListDiffering(ctx context.Context, path string) ([]helper.Record, error)
}

// Trigger asks for one refresh. Only the latest pending trigger survives.
type Trigger struct {
	Reason string
	At     time.Time
}

// Watcher observes one live file and reports list changes through OnChange.
type Watcher struct {
	mu sync.RWMutex

	path     string
	mode     string
	schedule cron.Schedule
	debounce time.Duration

	log    logging.Logger
	lister Lister
	mb     *mailbox.Mailbox[Trigger]

	last     []helper.Record
	primed   bool
	OnChange func([]helper.Record)
	OnError  func(error)
}

// New creates a watcher for path from the watch configuration.
func New(path string, cfg config.WatchConfig, lister Lister, log logging.Logger) (*Watcher, error) {
	sched, err := scheduleOf(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop{}
	}

	return &Watcher{
		path:     path,
		mode:     cfg.Mode,
		schedule: sched,
		debounce: cfg.DebounceWindow,
		log:      log,
		lister:   lister,
		mb:       mailbox.New[Trigger](),
		OnChange: func([]helper.Record) {},
		OnError:  func(error) {},
	}, nil
}

// scheduleOf prefers the cron spec and falls back to a fixed interval.
func scheduleOf(cfg config.WatchConfig) (cron.Schedule, error) {
	if cfg.Schedule != "" {
		s, err := cron.ParseStandard(cfg.Schedule)
		if err != nil {
			return nil, fmt.Errorf("invalid watch schedule %q: %w", cfg.Schedule, err)
		}
		return s, nil
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid watch poll interval %s", cfg.PollInterval)
	}
	return every(cfg.PollInterval), nil
}

// every is a fixed-delay schedule. cron.Every rounds up to whole seconds.
type every time.Duration

func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

// Start refreshes once, then runs until ctx is done. The strategy for
// noticing live-file changes is chosen from the configured mode.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.RLock()
	mode := w.mode
	dir := filepath.Dir(w.path)
	w.mu.RUnlock()

	useFsnotify := false
	switch mode {
	case "fsnotify":
		useFsnotify = true
	case "poll":
	case "auto":
		res := fsprobe.Probe(dir)
		useFsnotify = res.FsnotifySupported
		if !useFsnotify {
			w.log.Warn("fsnotify disabled", "reason", res.Reason)
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	wg.Add(2)
	go func() {
		defer wg.Done()
		w.StartSchedule(ctx)
	}()
	go func() {
		defer wg.Done()
		w.refreshLoop(ctx)
	}()

	if useFsnotify {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.StartFsNotify(ctx); err != nil {
				errCh <- err
				cancel()
			}
		}()
	}

	w.mb.Put(Trigger{Reason: "start", At: time.Now()})

	<-ctx.Done()
	w.mb.Close()
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
