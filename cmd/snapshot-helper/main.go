// Command snapshot-helper is the privileged half of compare-with-snapshot.
// It is started through a fixed elevation command (pkexec) and performs
// exactly one of list-differing, export-temp or remove-temp per invocation,
// printing one JSON record to stdout.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"

	"github.com/danlynn/compare-with-snapshot/internal/config"
	"github.com/danlynn/compare-with-snapshot/internal/export"
	"github.com/danlynn/compare-with-snapshot/internal/helper"
	"github.com/danlynn/compare-with-snapshot/internal/logging"
	"github.com/danlynn/compare-with-snapshot/internal/snapshot"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var logg logging.Logger = logging.StdLogger{}

	// Only the system config: a user-writable file must never steer a root process.
	cfg, err := config.LoadOrDefault(config.SystemPath)
	if err != nil {
		logg.Error("failed to load config", "error", err)
		_ = json.NewEncoder(os.Stdout).Encode(helper.ErrorRecord{Error: err.Error()})
		return 1
	}

	audit, err := logging.OpenAudit(cfg.StateDir(), logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		logg.Error("audit log unavailable, logging to stderr", "error", err)
	} else {
		defer audit.Close()
		logg = audit.With(
			"request", uuid.NewString(),
			"uid", os.Getuid(),
			"pkexec_uid", os.Getenv("PKEXEC_UID"),
		)
	}

	finder := snapshot.New(cfg.Layout, logg, nil)
	store := export.NewStore(cfg.Export.TempRoot, logg, nil)
	store.SetOwner(invokerUID())

	return helper.New(finder, store, logg, nil).Run(ctx, args, os.Stdout)
}

// invokerUID is the uid of the user who asked for elevation, or -1.
func invokerUID() int {
	for _, name := range []string{"PKEXEC_UID", "SUDO_UID"} {
		if uid, err := strconv.Atoi(os.Getenv(name)); err == nil && uid >= 0 {
			return uid
		}
	}
	return -1
}
