// Package logging builds the leveled console logger used across tasktracker.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultPrefix is printed before every log line.
const DefaultPrefix = "tasktracker"

// Options holds configuration for console logging.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns default options for console logging.
// Only warnings and errors are shown so command output stays readable.
func DefaultOptions() Options {
	return Options{
		Level:           log.WarnLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          DefaultPrefix,
	}
}

// New creates a logger writing to w. A nil w writes to stderr.
func New(w io.Writer, opts Options) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// NewFromConfig creates a logger from string configuration values.
// This is useful when loading config from TOML or environment variables.
func NewFromConfig(w io.Writer, level, format string, timestamps, caller bool) *log.Logger {
	return New(w, Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: timestamps,
		ReportCaller:    caller,
		Prefix:          DefaultPrefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel parses a string log level to a charmbracelet/log Level.
// Unknown values map to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter parses a string formatter name to a charmbracelet/log Formatter.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
