package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewWithWriterTagsService(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("catalog-service", "info", &buf)

	l.Info("started")

	entry := lastLine(t, &buf)
	assert.Equal(t, "catalog-service", entry["service"])
	assert.Equal(t, "started", entry["msg"])
}

func TestNewWithWriterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("catalog-service", "warn", &buf)

	l.Info("suppressed")
	assert.Zero(t, buf.Len())

	l.Warn("emitted")
	entry := lastLine(t, &buf)
	assert.Equal(t, "emitted", entry["msg"])
}

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, CorrelationIDFromContext(ctx))

	ctx = WithCorrelationID(ctx, "corr-123")
	assert.Equal(t, "corr-123", CorrelationIDFromContext(ctx))
}

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-9")
	assert.Equal(t, "user-9", UserIDFromContext(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextReturnsStoredLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("catalog-service", "info", &buf)

	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestWithContextEnrichment(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("catalog-service", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "corr-42")
	ctx = WithUserID(ctx, "user-7")

	WithContext(ctx, base).Info("enriched")

	entry := lastLine(t, &buf)
	assert.Equal(t, "corr-42", entry["correlation_id"])
	assert.Equal(t, "user-7", entry["user_id"])
	assert.NotContains(t, entry, "trace_id")
}

func TestWithContextPlainContext(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("catalog-service", "info", &buf)

	WithContext(context.Background(), base).Info("bare")

	entry := lastLine(t, &buf)
	assert.NotContains(t, entry, "correlation_id")
	assert.NotContains(t, entry, "user_id")
}
