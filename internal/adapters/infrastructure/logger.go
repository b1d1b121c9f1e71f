// Package infrastructure provides the cross-cutting adapters: structured
// logging, connectivity probing, and metrics collection.
package infrastructure

import (
	"log/slog"
	"os"

	"weatherpocket.app/internal/ports"
)

// SlogLoggerAdapter implements the Logger port on the standard structured
// logger.
type SlogLoggerAdapter struct {
	logger *slog.Logger
}

// NewSlogLoggerAdapter creates a logger writing JSON to stderr at the given
// minimum level.
func NewSlogLoggerAdapter(level slog.Level) *SlogLoggerAdapter {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &SlogLoggerAdapter{logger: slog.New(handler)}
}

func (l *SlogLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	l.logger.Debug(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) Info(msg string, fields ...ports.Field) {
	l.logger.Info(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	l.logger.Warn(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) Error(msg string, fields ...ports.Field) {
	l.logger.Error(msg, toArgs(fields)...)
}

func toArgs(fields []ports.Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return args
}
