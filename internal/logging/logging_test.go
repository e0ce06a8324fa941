package logging

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit_AppendsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	a, err := OpenAudit(dir, slog.LevelInfo)
	require.NoError(t, err)
	a.Info("first", "command", "list-differing")
	require.NoError(t, a.Close())

	b, err := OpenAudit(dir, slog.LevelInfo)
	require.NoError(t, err)
	b.With("request", "abc").Error("second", "error", "boom")
	b.Debug("hidden")
	require.NoError(t, b.Close())

	data, err := os.ReadFile(b.Path())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "msg=first")
	assert.Contains(t, lines[0], "command=list-differing")
	assert.Contains(t, lines[1], "request=abc")
	assert.Contains(t, lines[1], "error=boom")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestPairs(t *testing.T) {
	assert.Equal(t, " a=1 b=two", pairs([]any{"a", 1, "b", "two"}))
	assert.Equal(t, " odd", pairs([]any{"odd"}))
}
