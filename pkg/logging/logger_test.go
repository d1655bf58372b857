package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"uppercase level", "DEBUG"},
		{"unknown level falls back to info", "verbose"},
		{"empty level falls back to info", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			require.NotNil(t, logger)
			require.NotNil(t, logger.Logger)
		})
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(nil, slog.LevelInfo))
	assert.False(t, logger.Enabled(nil, slog.LevelDebug))
}

func TestWith(t *testing.T) {
	// Must stay a *Logger so callers can pass child loggers where the
	// wrapper type is expected.
	var logger *Logger = Default().With("chat_id", int64(42))
	require.NotNil(t, logger)

	var nilLogger *Logger
	assert.NotNil(t, nilLogger.With("chat_id", int64(42)))
}

func TestComponent(t *testing.T) {
	logger := Default().Component("engine")
	require.NotNil(t, logger)

	var nilLogger *Logger
	assert.NotNil(t, nilLogger.Component("engine"))
}
