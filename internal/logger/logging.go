// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed charm log that follows the global log level.
// Output goes to stderr; stdout belongs to the IPC stream.
func New(prefix string) *log.Logger {
	level := log.GetLevel()
	return NewWithConfig(os.Stderr, prefix, level, false, level == log.DebugLevel, log.TextFormatter)
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// Setup sets the global level and output used by package level log calls.
// debug wins over level and also turns on timestamps.
func Setup(debug bool, level string) {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return
	}
	log.SetLevel(ParseLevel(level))
	log.SetReportTimestamp(false)
}

// ParseLevel maps names like "debug" or "warn" to a level, Info when unknown.
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
