// Package logging holds the single injectable logger every pipeline
// package logs through, adapted from translitkit's common/logger.go.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the package-level logger, defaulting to a console writer at
// Info level so a binary that never calls SetLogger still gets readable
// output instead of silence.
var logger zerolog.Logger

func init() {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// SetLogger replaces the package-level logger, e.g. to redirect to a
// file, change level, or switch to JSON output in production.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// GetLogger returns the current package-level logger.
func GetLogger() zerolog.Logger {
	return logger
}
