// Package logging configures structured logging for the CLI and the
// language server.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Environment variables naming a log file. The first one that points at
// an existing file wins.
var LogPathEnvs = []string{"ZUUL_LS_LOG_PATH", "ZUUL_SEARCH_LOG_PATH"}

// New creates a logger writing to w. format is "json" or "text".
func New(level slog.Level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// LogFilePath returns the log file selected by the environment.
func LogFilePath() (string, bool) {
	for _, env := range LogPathEnvs {
		path := os.Getenv(env)
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Setup builds the process logger and installs it as the slog default.
// Logs go to the environment selected file at debug level, otherwise to
// stderr at warn level, or info when verbose. The returned func closes
// the log file.
func Setup(verbose bool) (*slog.Logger, func(), error) {
	if path, ok := LogFilePath(); ok {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		logger := New(slog.LevelDebug, "text", f)
		slog.SetDefault(logger)
		return logger, func() { f.Close() }, nil
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := New(level, "text", os.Stderr)
	slog.SetDefault(logger)
	return logger, func() {}, nil
}

type key struct{}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// FromContext returns the logger carried by ctx or the slog default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(key{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
