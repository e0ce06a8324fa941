package watcher

import (
	"github.com/danlynn/compare-with-snapshot/internal/config"
)

// UpdateConfig swaps the schedule and debounce window for hot-reload.
// The mode is fixed for the lifetime of Start.
func (w *Watcher) UpdateConfig(cfg config.WatchConfig) error {
	sched, err := scheduleOf(cfg)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.schedule = sched
	w.debounce = cfg.DebounceWindow
	return nil
}
