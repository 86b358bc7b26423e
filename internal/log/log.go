// Package log provides the package-level structured logger used across
// the tabulation engine. It wraps github.com/rs/zerolog behind a small
// printf-style call surface so call sites read the same way the
// teacher's internal logger did: log.Debug("...", args...).
//
// Only the call surface is in scope here; where the resulting log lines
// end up (files, a collector, stdout) is an operational decision left to
// the caller of SetOutput, not something this package manages.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().
	Timestamp().
	Logger().
	Level(zerolog.InfoLevel)

// SetOutput redirects subsequent log lines to w, preserving the current
// level. Useful in tests that want to assert on log output, or in a host
// process that wants JSON lines instead of the console writer.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// SetLevel changes the minimum level that is actually written. Valid
// values are "debug", "info", "warn", "error"; anything else is treated
// as "info".
func SetLevel(level string) {
	switch level {
	case "debug":
		logger = logger.Level(zerolog.DebugLevel)
	case "warn":
		logger = logger.Level(zerolog.WarnLevel)
	case "error":
		logger = logger.Level(zerolog.ErrorLevel)
	default:
		logger = logger.Level(zerolog.InfoLevel)
	}
}

// Debug logs round-by-round tabulator bookkeeping: the undeclared
// write-in drop, elimination bucket math, surplus transfer fractions.
func Debug(format string, args ...any) {
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// Info logs round and tabulation lifecycle events: a candidate elected
// or eliminated, a sequential seat filled.
func Info(format string, args ...any) {
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn logs recoverable anomalies that do not stop tabulation, such as a
// tie-break falling back from a previous-round-counts comparison to
// randomness.
func Warn(format string, args ...any) {
	logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs a terminal condition: configuration rejected, a tabulation
// invariant violated.
func Error(format string, args ...any) {
	logger.Error().Msg(fmt.Sprintf(format, args...))
}
