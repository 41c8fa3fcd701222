// Package logging owns the diagnostic logger that writes to stderr.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Logger is the package-level structured logger. It is usable before Init
// and defaults to warnings on stderr.
var Logger = newLogger(os.Stderr, log.WarnLevel, false)

// Init replaces Logger with one writing to w at the given level.
// NO_COLOR in the environment forces plain output as well.
func Init(w io.Writer, level log.Level, noColor bool) {
	noColor = noColor || os.Getenv("NO_COLOR") != ""
	Logger = newLogger(w, level, noColor)
}

func newLogger(w io.Writer, level log.Level, noColor bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})
	if noColor {
		l.SetColorProfile(termenv.Ascii)
	}
	return l
}

// ParseLevel converts "debug", "info", "warn" or "error" to a log level.
// Unknown strings default to WarnLevel.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}
