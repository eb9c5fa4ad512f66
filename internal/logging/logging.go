// Package logging builds the process slog.Logger from the log config.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/claude/liftlog/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for cfg and a closer for its output. Without a log
// file everything goes to stdout. With one, output rotates through lumberjack
// and is copied to stdout when cfg.Stdout is set.
func New(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  50, // megabytes
			Compress: true,
		}
		closer = file
		out = file
		if cfg.Stdout {
			out = io.MultiWriter(os.Stdout, file)
		}
	}

	return slog.New(NewHandler(out, cfg)), closer
}

// NewHandler returns a text or JSON handler writing to w at the configured level.
func NewHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
