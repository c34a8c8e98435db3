package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icssc/matchy-meetups-bot/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("bogus"))
}

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewFromConfig(&buf, "json", "debug").WithComponent("test")

	l.LogSend(context.Background(), "seed_abcd1234", 3, 1, nil)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "send completed with failures", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "test", rec["component"])
	assert.EqualValues(t, 3, rec["messaged"])
	assert.EqualValues(t, 1, rec["failed"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewFromConfig(&buf, "text", "warn")

	l.LogDelivery(context.Background(), 42, nil)
	assert.Empty(t, buf.String())

	l.LogDelivery(context.Background(), 42, errors.New("blocked"))
	assert.Contains(t, buf.String(), "direct message failed")
	assert.Contains(t, buf.String(), "user=42")
}

func TestNoop(t *testing.T) {
	l := logging.Noop()
	l.LogPreview(context.Background(), "s", 4, 0, "k", nil)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
