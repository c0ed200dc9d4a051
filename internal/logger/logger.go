// Package logger builds the zerolog logger shared by the server, middleware and CLI.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"resumatch/internal/config"
)

// New returns a logger writing to w. Format "pretty" selects the console writer,
// anything else emits JSON lines with "ts" and "msg" fields. Timestamps are rendered in loc.
func New(w io.Writer, cfg config.LogConfig, loc *time.Location) zerolog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	zerolog.TimestampFunc = func() time.Time { return time.Now().In(loc) }
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if strings.EqualFold(cfg.Format, "pretty") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Init builds the process logger on stdout and installs it as the global logger.
func Init(cfg config.LogConfig, loc *time.Location) zerolog.Logger {
	l := New(os.Stdout, cfg, loc)
	zlog.Logger = l
	zerolog.DefaultContextLogger = &zlog.Logger
	return l
}
