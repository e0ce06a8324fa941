package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/danlynn/compare-with-snapshot/internal/export"
	"github.com/danlynn/compare-with-snapshot/internal/fs"
	"github.com/danlynn/compare-with-snapshot/internal/logging"
	"github.com/danlynn/compare-with-snapshot/internal/snapshot"
)

// Helper dispatches one invocation to its command.
type Helper struct {
	registry map[string]Command
	log      logging.Logger
}

// New wires the three commands. log should already carry the request id.
func New(finder *snapshot.Finder, store *export.Store, log logging.Logger, filesystem fs.FS) *Helper {
	if filesystem == nil {
		filesystem = fs.New()
	}
	if log == nil {
		log = logging.Nop{}
	}

	h := &Helper{registry: map[string]Command{}, log: log}
	h.register(&listDiffering{finder: finder, fs: filesystem}, 1)
	h.register(&exportTemp{finder: finder, store: store, fs: filesystem}, 2)
	h.register(&removeTemp{store: store, fs: filesystem}, 2)
	return h
}

func (h *Helper) register(cmd Command, arity int) {
	h.registry[cmd.Name()] = ApplyMiddlewares(cmd, WithArity(arity), WithAudit(h.log))
}

// Commands returns the registered commands sorted by name.
func (h *Helper) Commands() []Command {
	list := make([]Command, 0, len(h.registry))
	for _, cmd := range h.registry {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Run executes args[0] with the remaining args, writes exactly one record to
// out (nothing for an empty success) and returns the process exit code.
func (h *Helper) Run(ctx context.Context, args []string, out io.Writer) int {
	if len(args) == 0 {
		return h.fail(out, fmt.Errorf("no command given"))
	}

	cmd, ok := h.registry[args[0]]
	if !ok {
		h.log.Error("unknown command", "command", args[0])
		return h.fail(out, fmt.Errorf("unknown command %q", args[0]))
	}

	result, err := cmd.Run(&Context{Context: ctx, Args: args[1:]})
	if err != nil {
		return h.fail(out, err)
	}
	if result == nil {
		return 0
	}

	if err := json.NewEncoder(out).Encode(result); err != nil {
		h.log.Error("writing result", "error", err)
		return 1
	}
	return 0
}

func (h *Helper) fail(out io.Writer, err error) int {
	_ = json.NewEncoder(out).Encode(ErrorRecord{Error: err.Error()})
	return 1
}
