package helper

import (
	"fmt"

	"github.com/danlynn/compare-with-snapshot/internal/logging"
	"github.com/danlynn/compare-with-snapshot/internal/snaperr"
)

// WithArity refuses invocations with the wrong number of arguments.
func WithArity(n int) Middleware {
	return func(cmd Command) Command {
		return &WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *Context) (any, error) {
				if len(ctx.Args) != n {
					return nil, fmt.Errorf("usage: %s %s: %w", cmd.Name(), cmd.Usage(), snaperr.ErrValidationFailed)
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithAudit records the invocation and its outcome.
func WithAudit(log logging.Logger) Middleware {
	return func(cmd Command) Command {
		return &WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *Context) (any, error) {
				log.Info("invoked", "command", cmd.Name(), "args", ctx.Args)

				out, err := cmd.Run(ctx)
				if err != nil {
					log.Error("failed", "command", cmd.Name(), "error", err)
					return nil, err
				}

				if list, ok := out.([]Record); ok {
					log.Info("succeeded", "command", cmd.Name(), "entries", len(list))
				} else {
					log.Info("succeeded", "command", cmd.Name(), "result", out)
				}
				return out, nil
			},
		}
	}
}
