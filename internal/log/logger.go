// Package log wraps log/slog with the handful of helpers devpilot uses.
package log

import (
	"context"
	"io"
	"log/slog"
)

// Logger provides structured logging with slog.
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a Logger from config.
func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = DefaultConfig().Output
	}
	opts := &slog.HandlerOptions{Level: config.Level.ToSlogLevel()}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}
	return &Logger{slog: slog.New(handler), config: config}
}

// Default creates a logger with DefaultConfig.
func Default() *Logger {
	return New(DefaultConfig())
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New(Config{Level: LevelError, Format: FormatText, Output: io.Discard})
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), config: l.config}
}

// WithError attaches err to the logger. A nil error returns l unchanged.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With("error", err.Error())
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// InfoContext logs at info level with ctx.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.slog.InfoContext(ctx, msg, args...)
}

// Enabled reports whether records at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return l.slog.Enabled(context.Background(), level.ToSlogLevel())
}

// Slog exposes the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger { return l.slog }

func (l *Logger) Config() Config { return l.config }
