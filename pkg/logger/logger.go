// Package logger provides the shared zerolog logger for uneff. Diagnostics
// always go to stderr so that stdout stays clean for cleaned text and
// machine-readable reports.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger = zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// SetLevel adjusts the minimum level emitted by the shared logger. Unknown
// level names are ignored and leave the current level in place.
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return
	}
	logger = logger.Level(parsed)
}

// Quiet raises the level so only errors and worse are emitted.
func Quiet() {
	logger = logger.Level(zerolog.ErrorLevel)
}

// Get returns the shared logger. Components derive their own child loggers
// from it rather than logging through this package.
func Get() zerolog.Logger {
	return logger
}
