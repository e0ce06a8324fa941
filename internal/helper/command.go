// Package helper implements the privileged side of the snapshot boundary:
// three strictly validated commands, each answering with one JSON record.
package helper

import "context"

// Command is one operation of the privileged helper.
type Command interface {
	Name() string
	Usage() string
	Brief() string
	// Run returns the success payload. A nil payload prints nothing.
	Run(ctx *Context) (any, error)
}

// Context carries one invocation.
type Context struct {
	context.Context
	Args []string
}

// Middleware is a function that wraps a command.
type Middleware func(Command) Command

// WrappedCommand represents a command wrapped with a middleware.
type WrappedCommand struct {
	Command
	Wrap func(ctx *Context) (any, error)
}

// Run executes the wrapped command.
func (w *WrappedCommand) Run(ctx *Context) (any, error) {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// ApplyMiddlewares wraps a command with any number of middlewares.
// The last middleware runs first.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}
