package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls the process-wide log output.
type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// Format is "json" or "console". APP_ENV=dev forces console.
	Format string
}

var (
	base   = zerolog.New(os.Stdout).With().Timestamp().Logger()
	output io.Writer = os.Stdout
)

// Setup configures the base logger. It is called once from main.
func Setup(opts Options) error {
	lvl := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return err
		}
		lvl = parsed
	}
	zerolog.SetGlobalLevel(lvl)

	format := strings.ToLower(opts.Format)
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		format = "console"
	}
	if format == "console" {
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	} else {
		output = os.Stdout
	}
	base = zerolog.New(output).With().Timestamp().Logger()
	return nil
}

// New returns a logger tagged with the given component.
func New(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// Nop discards everything; used by tests and optional dependencies.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
