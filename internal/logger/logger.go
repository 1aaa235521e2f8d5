// ABOUTME: Configured zerolog logger for diary diagnostics.
// ABOUTME: Writes structured logs to stderr so stdout stays clean for command output.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = zerolog.WarnLevel

// New returns a logger writing to w at the given level. Unknown or empty
// levels fall back to DefaultLevel.
func New(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Str("service", "diary").
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return DefaultLevel
	}
	return lvl
}
