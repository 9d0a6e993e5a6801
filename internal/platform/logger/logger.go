// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls the log handler.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// LoadConfig reads LOG_LEVEL and LOG_FORMAT.
func LoadConfig() Config {
	return Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	}
}

// New builds a logger writing to w.
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Setup installs a stdout logger as the slog default and returns it.
func Setup(cfg Config) *slog.Logger {
	l := New(cfg, os.Stdout)
	slog.SetDefault(l)
	return l
}

// ParseLevel maps a level name to slog.Level. Unknown names fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
