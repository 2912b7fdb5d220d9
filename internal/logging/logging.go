// Package logging builds the charmbracelet/log logger used across the app.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds logger settings.
type Options struct {
	Level  string
	Format string
	Caller bool
}

// New returns a logger writing to w with prefix "tada".
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: true,
		ReportCaller:    opts.Caller,
		Prefix:          "tada",
	})
}

// OpenFile opens path for appending log lines, creating parent dirs.
// The TUI owns the terminal, so it logs here instead of stderr.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ParseLevel maps a level name to a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps a formatter name to a log.Formatter, defaulting to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
