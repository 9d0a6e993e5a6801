package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSONByDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Config{Level: "info"}, &buf)
	l.Info("hello", "symbol", "AAPL")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "AAPL", rec["symbol"])
}

func TestNew_TextFormatAndLevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "text"}, &buf)
	l.Info("dropped")
	l.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=kept")
}
