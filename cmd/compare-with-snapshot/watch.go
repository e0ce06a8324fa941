package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danlynn/compare-with-snapshot/internal/config"
	"github.com/danlynn/compare-with-snapshot/internal/helper"
	"github.com/danlynn/compare-with-snapshot/internal/watcher"
)

func (a *app) watch(ctx context.Context, file, configPath string) error {
	w, err := watcher.New(file, a.cfg.Watch, a.client, a.log)
	if err != nil {
		return err
	}

	w.OnChange = func(records []helper.Record) {
		fmt.Fprintf(a.stdout, "== %s\n", time.Now().Format(time.DateTime))
		printRecords(a.stdout, records)
	}
	w.OnError = func(err error) {
		fmt.Fprintln(a.stderr, "Error:", err)
	}

	// Hot reload on SIGHUP
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
			}

			newCfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				a.log.Error("config reload failed", "error", err)
				continue
			}
			if err := w.UpdateConfig(newCfg.Watch); err != nil {
				a.log.Error("config reload failed", "error", err)
				continue
			}
			a.log.Info("config reloaded")
		}
	}()

	return w.Start(ctx)
}
