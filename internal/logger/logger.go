package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a zerolog.Logger writing to stderr, as console text or JSON.
func New(level, format string) zerolog.Logger {
	return newWithWriter(os.Stderr, level, format)
}

func newWithWriter(w io.Writer, level, format string) zerolog.Logger {
	out := w
	if !strings.EqualFold(format, "json") {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(out).
		With().
		Timestamp().
		Str("service", "linkup-cli").
		Logger().
		Level(parseLevel(level))
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}
