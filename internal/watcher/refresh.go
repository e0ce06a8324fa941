package watcher

import (
	"context"
	"reflect"

	"github.com/danlynn/compare-with-snapshot/internal/helper"
)

// refreshLoop serves triggers until the mailbox closes. Calls to the helper
// are strictly sequential.
func (w *Watcher) refreshLoop(ctx context.Context) {
	for {
		t, ok := w.mb.Take()
		if !ok || ctx.Err() != nil {
			return
		}
		w.log.Debug("refresh", "reason", t.Reason, "at", t.At)
		w.refresh(ctx)
	}
}

// refresh lists once and reports the result if it differs from the last one.
func (w *Watcher) refresh(ctx context.Context) {
	w.mu.RLock()
	path := w.path
	w.mu.RUnlock()

	records, err := w.lister.ListDiffering(ctx, path)
	if err != nil {
		w.log.Error("listing failed", "path", path, "error", err)
		w.OnError(err)
		return
	}

	if !w.remember(records) {
		return
	}
	w.OnChange(records)
}

// remember stores records and reports whether they changed.
func (w *Watcher) remember(records []helper.Record) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.primed && reflect.DeepEqual(normalize(w.last), normalize(records)) {
		return false
	}
	w.last = records
	w.primed = true
	return true
}

func normalize(r []helper.Record) []helper.Record {
	if len(r) == 0 {
		return nil
	}
	return r
}
