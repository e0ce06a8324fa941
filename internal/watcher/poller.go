package watcher

import (
	"context"
	"time"
)

// StartSchedule triggers a refresh at every activation of the schedule.
func (w *Watcher) StartSchedule(ctx context.Context) {
	for {
		w.mu.RLock()
		next := w.schedule.Next(time.Now())
		w.mu.RUnlock()

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case now := <-timer.C:
			w.mb.Put(Trigger{Reason: "schedule", At: now})
		}
	}
}
