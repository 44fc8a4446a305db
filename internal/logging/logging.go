package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger.
type Options struct {
	Level  string    // debug, info, warn, error
	Format string    // console or json
	Out    io.Writer // defaults to stderr
}

// New builds a logger. Unknown levels fall back to info; unknown formats are rejected.
func New(opts Options) (zerolog.Logger, error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	switch strings.ToLower(opts.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q (want console or json)", opts.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
