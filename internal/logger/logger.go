package logger

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type Config struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New builds a logger writing to stderr by default so stdout stays free for
// command output.
func New(cfg Config) *charmlog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           ParseLevel(cfg.Level),
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *charmlog.Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{Level: charmlog.FatalLevel})
}

// ParseLevel falls back to info for unknown or empty values.
func ParseLevel(value string) charmlog.Level {
	level, err := charmlog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return charmlog.InfoLevel
	}
	return level
}
