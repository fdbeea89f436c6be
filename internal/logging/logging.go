// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

// Init sets up the global logger. In development mode output is a
// human-readable console writer; otherwise JSON lines on stderr.
func Init(isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	if isDevelopment {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			With().
			Timestamp().
			Logger()
	}
}

// Logger returns the configured logger.
func Logger() zerolog.Logger {
	return logger
}
