// Package logger builds the slog loggers used by the converter binaries.
// The pipeline packages themselves never log.
package logger

import (
	"log/slog"
	"os"
)

// New returns a structured logger writing to stderr. Format is "json"
// (default) or "text".
func New(format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler
	if format == "text" {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(h)
}

// Default is the default logger instance.
var Default = New("json")
