package logging

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
)

// Provides a simple logger interface for the application.
// Arguments after msg are slog-style key/value pairs.

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// StdLogger writes through the standard log package (stderr by default).
type StdLogger struct{}

func (StdLogger) Debug(msg string, args ...any) { log.Print("DEBUG: " + msg + pairs(args)) }
func (StdLogger) Info(msg string, args ...any)  { log.Print("INFO: " + msg + pairs(args)) }
func (StdLogger) Warn(msg string, args ...any)  { log.Print("WARN: " + msg + pairs(args)) }
func (StdLogger) Error(msg string, args ...any) { log.Print("ERROR: " + msg + pairs(args)) }

func pairs(args []any) string {
	var b strings.Builder
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}
	return b.String()
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Warn(string, ...any)  {}
func (Nop) Error(string, ...any) {}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
