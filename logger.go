package scriptvec

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with scriptvec-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds a vector name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("vector", name),
	}
}

// LogResize logs a resize operation.
func (l *Logger) LogResize(ctx context.Context, length float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "resize rejected",
			"length", length,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "resize completed",
			"length", length,
		)
	}
}

// LogSet logs an element assignment.
func (l *Logger) LogSet(ctx context.Context, index float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "set rejected",
			"index", index,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "set completed",
			"index", index,
		)
	}
}

// LogAppend logs an append operation.
func (l *Logger) LogAppend(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "append rejected",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "append completed",
			"count", count,
		)
	}
}

// LogSnapshot logs a snapshot save.
func (l *Logger) LogSnapshot(ctx context.Context, name string, elements int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
			"elements", elements,
		)
	}
}

// LogLoad logs a snapshot load.
func (l *Logger) LogLoad(ctx context.Context, name string, elements int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"name", name,
			"elements", elements,
		)
	}
}
