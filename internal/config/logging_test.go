package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogLevelDebug,
		" INFO ":  LogLevelInfo,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"bogus":   LogLevelInfo,
	}
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			assert.Equal(t, want, NormalizeLogLevel(raw))
		})
	}
	assert.Equal(t, slog.LevelWarn, LogLevelWarn.SlogLevel())
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := LoggingConfig{Level: "info", Format: "json"}.NewLogger(&buf, false)
		logger.Debug("hidden")
		logger.Info("shown", slog.String("term", "book"))
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"term":"book"`)
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := LoggingConfig{Level: "error", Format: "text"}.NewLogger(&buf, true)
		logger.Debug("visible")
		assert.Contains(t, buf.String(), "msg=visible")
	})
}
