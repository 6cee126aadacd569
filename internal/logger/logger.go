// Package logger builds the charmbracelet/log loggers used across the service.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetLevel sets the global log level from its name ("debug", "info", ...).
// Unknown names leave the level unchanged.
func SetLevel(name string) {
	if level, err := log.ParseLevel(name); err == nil {
		log.SetLevel(level)
	}
}

// New creates a component logger that respects the global log level.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter creates a component logger writing to w.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
