// Package logger holds the process wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

// ServiceName is attached to every log line.
const ServiceName = "post-generator"

type Logger struct {
	Log *zap.Logger
}

// New returns a Logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{
		Log: zap.NewNop(),
	}
}

// Init replaces the logger with a JSON production logger at level.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.InitialFields = map[string]interface{}{"service": ServiceName}

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = zl
	return nil
}

// Info logs msg with loosely typed key value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Log.Sugar().Infow(msg, keysAndValues...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.Log.Sync()
}
