package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Setup initializes the global zerolog logger based on environment configuration.
//   - level: log level string (trace, debug, info, warn, error, fatal, panic)
//   - format: "json" for machine output, "pretty" for human-readable output,
//     "auto" picks pretty when stdout is a terminal and json otherwise
//
// Returns the configured logger instance.
func Setup(level, format string) zerolog.Logger {
	return SetupFile(os.Stdout, level, format)
}

// SetupFile is Setup for an arbitrary file, such as stderr when stdout is
// taken by an interactive session.
func SetupFile(f *os.File, level, format string) zerolog.Logger {
	return New(f, level, resolveFormat(format, term.IsTerminal(int(f.Fd()))))
}

// New builds a logger writing to w. It is split from Setup so callers can
// route engine logs away from an interactive terminal.
func New(w io.Writer, level, format string) zerolog.Logger {
	var writer io.Writer

	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	} else {
		writer = w
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()
}

func resolveFormat(format string, tty bool) string {
	if format != "auto" {
		return format
	}
	if tty {
		return "pretty"
	}
	return "json"
}
