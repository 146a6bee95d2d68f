// Package logging holds the zerolog logger shared by the rerun runtime and
// the exponentiation prover.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var log = newConsoleLogger(os.Stderr)

func newConsoleLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

// Logger returns the process-wide logger.
func Logger() *zerolog.Logger {
	return &log
}

// SetJSONOutput switches the logger to structured JSON lines on w.
func SetJSONOutput(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger().Level(log.GetLevel())
}

// SetOutput switches the logger to human readable console output on w.
func SetOutput(w io.Writer) {
	log = newConsoleLogger(w).Level(log.GetLevel())
}

// SetLevel drops entries below level.
func SetLevel(level zerolog.Level) {
	log = log.Level(level)
}
