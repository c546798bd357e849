package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/towerstyle/internal/ports"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := make(map[string]interface{})
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %q", line)
		out = append(out, entry)
	}
	return out
}

func TestLoggerIncludesCorrelationIDAndComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "debug", Component: "store"})
	require.NoError(t, err)

	ctx := ports.WithCorrelationID(context.Background(), "abc123")
	logger.Info(ctx, "loaded style", "path", "/tmp/style.json", "nodes", 12)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "loaded style", lines[0]["message"])
	require.Equal(t, "info", lines[0]["level"])
	require.Equal(t, "store", lines[0]["component"])
	require.Equal(t, "abc123", lines[0]["correlation_id"])
	require.Equal(t, "/tmp/style.json", lines[0]["path"])
	require.EqualValues(t, 12, lines[0]["nodes"])
}

func TestLoggerWithAddsFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	require.NoError(t, err)

	child := logger.With("component", "commands")
	child.Warn(context.Background(), "command had no effect", "command", "move")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "commands", lines[0]["component"])
	require.Equal(t, "move", lines[0]["command"])
	require.Equal(t, "warn", lines[0]["level"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "WARN"})
	require.NoError(t, err)

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "hidden")
	logger.Error(context.Background(), "shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "shown", lines[0]["message"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNoOpLogger(t *testing.T) {
	t.Parallel()

	noOp := NewNoOpLogger()
	noOp.Info(context.Background(), "hello world")
	require.Same(t, noOp, noOp.With("key", "value"))

	var nilLogger *Logger
	require.NotPanics(t, func() { nilLogger.Info(context.Background(), "ignored") })
	require.IsType(t, &NoOpLogger{}, nilLogger.With("k", "v"))
}

func TestIsTerminalRejectsBuffers(t *testing.T) {
	t.Parallel()

	require.False(t, IsTerminal(&bytes.Buffer{}))
}
