package logger_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/atinyakov/go-post-generator/internal/logger"
)

func TestNew(t *testing.T) {
	l := logger.New()
	require.NotNil(t, l)
	require.NotNil(t, l.Log)
	require.False(t, l.Log.Core().Enabled(zapcore.ErrorLevel))

	// a nop logger accepts calls before Init
	l.Info("ignored", "key", "value")
	l.Sync()
}

func TestInit_ValidLevels(t *testing.T) {
	validLevels := []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

	for _, level := range validLevels {
		t.Run(level, func(t *testing.T) {
			l := logger.New()
			require.NoError(t, l.Init(level))
			require.NotNil(t, l.Log)

			lvl, err := zapcore.ParseLevel(level)
			require.NoError(t, err)
			require.True(t, l.Log.Core().Enabled(lvl))
		})
	}
}

func TestInit_FiltersLowerLevels(t *testing.T) {
	l := logger.New()
	require.NoError(t, l.Init("warn"))

	require.False(t, l.Log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Log.Core().Enabled(zapcore.WarnLevel))
}

func TestInit_InvalidLevel(t *testing.T) {
	l := logger.New()
	require.Error(t, l.Init("invalid_level"))
}
