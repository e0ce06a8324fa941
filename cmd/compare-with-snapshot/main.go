// Command compare-with-snapshot lists the snapshots in which a file's content
// changed and opens a diff between the chosen snapshot copy and the live file.
// All snapshot access goes through the privileged snapshot-helper.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/danlynn/compare-with-snapshot/internal/config"
	"github.com/danlynn/compare-with-snapshot/internal/helperclient"
	"github.com/danlynn/compare-with-snapshot/internal/logging"
)

const usage = `Usage:
  compare-with-snapshot [-pick N] [-print] FILE   choose a snapshot and diff it against FILE
  compare-with-snapshot list FILE                 list snapshots where FILE changed
  compare-with-snapshot watch FILE                keep the list current
`

// app is one invocation: configuration, the helper client and stdio.
type app struct {
	cfg    *config.Config
	log    logging.Logger
	client *helperclient.Client
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := flag.NewFlagSet("compare-with-snapshot", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configPath := fs.String("config", config.UserPath(), "config file")
	pick := fs.Int("pick", 0, "snapshot number to compare (1 = oldest); 0 asks")
	printDiff := fs.Bool("print", false, "print a unified diff instead of starting the viewer")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	var logg logging.Logger = logging.Nop{}
	if audit, err := logging.OpenAudit(cfg.StateDir(), logging.ParseLevel(cfg.Logging.Level)); err == nil {
		defer audit.Close()
		logg = audit.With("side", "caller")
	}

	a := &app{
		cfg:    cfg,
		log:    logg,
		client: helperclient.New(cfg.Helper.Command, logg),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	rest := fs.Args()
	cmd := "compare"
	if len(rest) == 2 && (rest[0] == "list" || rest[0] == "watch") {
		cmd, rest = rest[0], rest[1:]
	}
	if len(rest) != 1 {
		fs.Usage()
		return 2
	}

	file, err := filepath.Abs(rest[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	switch cmd {
	case "list":
		err = a.list(ctx, file)
	case "watch":
		err = a.watch(ctx, file, *configPath)
	default:
		err = a.compare(ctx, file, *pick, *printDiff)
	}

	if err != nil {
		logg.Error("command failed", "command", cmd, "file", file, "error", err)
		fmt.Fprintln(a.stderr, "Error:", err)
		return 1
	}
	return 0
}
