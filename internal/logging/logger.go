// Package logging configures zerolog for the command-line and TUI entry points.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string

	// Pretty selects human-readable console output instead of JSON.
	Pretty bool

	// File, when set, receives the log instead of Output.
	File string

	// Output is used when File is empty. Nil discards everything.
	Output io.Writer
}

// Setup builds the logger, installs it as the zerolog global and returns it
// together with a close func for any file it opened.
func Setup(cfg Config) (zerolog.Logger, func() error, error) {
	closer := func() error { return nil }

	out := cfg.Output
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f.Close
	}
	if out == nil {
		out = io.Discard
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.File != ""}
	}

	logger := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = logger
	return logger, closer, nil
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger derives a logger tagged with the given component name.
func NewLogger(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}
