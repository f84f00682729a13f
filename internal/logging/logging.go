// Package logging builds the zerolog loggers the rest of the app writes
// through: human-readable console output for CLI paths, a plain file while
// the TUI owns the terminal.
package logging

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Console returns a logger writing human-readable lines to stderr.
func Console(level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Logger()
}

// File returns a logger appending to path. An empty path returns a disabled
// logger, which is the default while the TUI is running. The file handle
// stays open for the life of the process.
func File(path, level string) (zerolog.Logger, error) {
	if path == "" {
		return zerolog.Nop(), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logging: opening %s: %w", path, err)
	}
	return zerolog.New(f).Level(parseLevel(level)).With().Timestamp().Logger(), nil
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
