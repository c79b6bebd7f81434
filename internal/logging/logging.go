// Package logging builds the structured diagnostic logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the logger.
type Config struct {
	// Level is the minimum level (trace, debug, info, warn, error).
	Level string
	// Format is json or console.
	Format string
	// Output is stdout or stderr.
	Output string
}

// DefaultConfig logs info and above to stderr in console format, keeping
// stdout for progress text.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// New creates a zerolog logger from cfg.
func New(cfg Config) zerolog.Logger {
	var out io.Writer = os.Stderr
	if strings.ToLower(cfg.Output) == "stdout" {
		out = os.Stdout
	}
	return NewWithWriter(cfg, out)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	if f := strings.ToLower(cfg.Format); f == "console" || f == "pretty" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().
		Logger()
}

// ParseLevel converts a level name to a zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
