// Package zaplog adapts a *zap.Logger to the core.Logger interface.
package zaplog

import (
	"go.uber.org/zap"

	"github.com/go-workpool/workpool/core"
)

// Logger implements core.Logger on top of zap.
type Logger struct {
	base *zap.Logger
}

var _ core.Logger = (*Logger)(nil)

// New wraps a zap logger. A nil logger falls back to zap.NewNop().
func New(base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return &Logger{base: base}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.base.Debug(msg, zapFields(fields)...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.base.Info(msg, zapFields(fields)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.base.Warn(msg, zapFields(fields)...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.base.Error(msg, zapFields(fields)...)
}

func zapFields(fields []core.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
