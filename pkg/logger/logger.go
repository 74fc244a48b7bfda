// Package logger wraps zap for application-wide structured logging.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide application-specific logging.
type Logger struct {
	*zap.SugaredLogger
}

// New creates a logger with the given level ("debug", "info", ...) and
// format ("json" or "console").
func New(level, format string) (*Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{SugaredLogger: zl.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// WithComponent tags all entries with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With("component", component)}
}

// Close flushes any buffered log entries.
func (l *Logger) Close() error {
	return l.SugaredLogger.Sync()
}
