package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger, replaced by Init.
var Log = zerolog.Nop()

func Init(env, level string) {
	Log = New(os.Stdout, env, level)
}

// New builds a logger writing JSON in production and console output otherwise.
func New(w io.Writer, env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "cublex").Logger()
}
