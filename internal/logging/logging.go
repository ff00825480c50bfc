// Package logging configures the process-wide slog handler. Output written
// through the standard log package is routed to the same handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var levelVar slog.LevelVar

// New builds a logger writing to w. format is "text" or "json".
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	levelVar.Set(lvl)

	opts := &slog.HandlerOptions{Level: &levelVar}
	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}
	return slog.New(h), nil
}

// Setup installs a logger built by New as the slog default.
func Setup(level, format string, w io.Writer) error {
	logger, err := New(level, format, w)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// SetLevel changes the level of every logger built by New.
func SetLevel(level slog.Level) { levelVar.Set(level) }

// ParseLevel accepts debug, info, warn/warning and error (case-insensitive).
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}
