// Package logging builds the charmbracelet loggers shared by the CLI,
// the SSH server and the spectator hub.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configure a logger.
type Options struct {
	Prefix string
	Level  string // debug, info, warn, error; empty means info
	Output io.Writer
}

// New creates a timestamped logger. It fails only on an unknown level.
func New(opts Options) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	}), nil
}

// Discard returns a logger that drops everything. Interactive play uses it
// so log lines never scribble over the alternate screen.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
