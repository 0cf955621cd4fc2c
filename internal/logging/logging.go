package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Options describes logger construction parameters.
type Options struct {
	Environment string
	Level       string
}

// New constructs a slog logger writing to w. Production gets JSON lines,
// every other environment gets the text handler. Development always logs
// at debug level with source locations.
func New(w io.Writer, opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)
	dev := opts.Environment == "dev"
	if dev {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: dev,
	}

	var handler slog.Handler
	if opts.Environment == "prod" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
