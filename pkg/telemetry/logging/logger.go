package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"autogit-hq/autogit/pkg/config"
)

// ParseLevel converts a configuration level string to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", level)
	}
}

// New creates a logger writing to w per the logging configuration. Unknown
// levels fall back to warn: the gateway must stay quiet rather than fail
// over a logging knob.
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Setup creates a logger on stderr and installs it as the slog default.
// Logs must never touch stdout: file descriptor 1 carries the git pack
// protocol once the session is handed off.
func Setup(cfg config.LoggingConfig) *slog.Logger {
	logger := New(cfg, os.Stderr)
	slog.SetDefault(logger)
	return logger
}
