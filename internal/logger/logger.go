// Package logger builds the zerolog loggers the binaries share. Lambda
// entrypoints log JSON lines for CloudWatch; the local CLI gets a console
// writer. The context helpers let deep call sites log without threading a
// logger through every signature.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// LoggerKey is the context key under which WithContext stores the logger.
var LoggerKey = contextKey{}

// New creates the default logger: JSON lines on stdout with timestamp and
// caller, the shape CloudWatch ingests as structured fields.
func New() zerolog.Logger {
	return NewWithWriter(os.Stdout)
}

// NewConsole creates a human-readable logger for local CLI runs.
func NewConsole() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Caller().Logger()
}

// NewWithWriter creates a structured logger on a custom writer.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Caller().Logger()
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context or returns a default one.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New()
}
