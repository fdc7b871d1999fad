package cmd

import (
	"io"
	"log/slog"
	"os"
)

// logger is replaced once the global configuration is read
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newLogger writes to stderr, stdout carries the reports
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}
