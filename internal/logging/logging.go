// Package logging builds the zerolog loggers used by the CLI and the
// display loop.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

// Console logs human-readable lines to w, for subcommands that do not own
// the terminal.
func Console(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(parseLevel(level)).
		With().Timestamp().Logger()
}

// File logs JSON lines to path while the renderer owns the terminal. An
// empty path discards everything. The returned closer must be called on
// shutdown.
func File(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), err
	}
	l := zerolog.New(f).Level(parseLevel(level)).With().Timestamp().Logger()
	return l, f, nil
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
