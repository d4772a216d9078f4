// Package logger builds slog loggers from the log configuration. Opening of
// log files is done by internal/iologger.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/herbolive/herbdb/pkg/config"
)

// New creates a new slog.Logger that writes to w.
// It respects the logging level and format from the config.
// Invalid values default to Info level and JSON format.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text", "tint":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive).
// Invalid levels default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
