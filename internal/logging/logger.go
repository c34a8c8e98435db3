// Package logging wraps slog.Logger with matchy-specific fields and helpers.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with consistent field names.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewFromConfig builds a Logger for a format ("text" or "json") and a level
// name ("debug", "info", "warn", "error") writing to w.
func NewFromConfig(w io.Writer, format, level string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return New(slog.NewJSONHandler(w, opts))
	}
	return New(slog.NewTextHandler(w, opts))
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// ParseLevel maps a level name to slog.Level; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSeed adds the seed string to the logger.
func (l *Logger) WithSeed(seed string) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// WithComponent tags log lines with a subsystem name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// LogPreview logs a generated preview.
func (l *Logger) LogPreview(ctx context.Context, seed string, members, imperfect int, key string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "preview failed",
			"seed", seed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "preview generated",
		"seed", seed,
		"members", members,
		"imperfect", imperfect,
		"key", key,
	)
}

// LogSend logs a committed pairing.
func (l *Logger) LogSend(ctx context.Context, key string, messaged, failed int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "send failed",
			"key", key,
			"error", err,
		)
	case failed > 0:
		l.WarnContext(ctx, "send completed with failures",
			"key", key,
			"messaged", messaged,
			"failed", failed,
		)
	default:
		l.InfoContext(ctx, "send completed",
			"key", key,
			"messaged", messaged,
		)
	}
}

// LogDelivery logs a single direct message attempt.
func (l *Logger) LogDelivery(ctx context.Context, user uint64, err error) {
	if err != nil {
		l.WarnContext(ctx, "direct message failed",
			"user", user,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "direct message delivered",
		"user", user,
	)
}
