// Package logging builds the slog loggers used by synthesized commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by FromEnv
const (
	EnvLevel  = "CLIARG_LOG_LEVEL"
	EnvFormat = "CLIARG_LOG_FORMAT"
)

// New creates a logger writing to w. It does not set the global logger.
// Unknown levels fall back to warn, so a command is quiet unless asked.
func New(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if strings.ToLower(formatStr) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

// FromEnv is New configured from CLIARG_LOG_LEVEL and CLIARG_LOG_FORMAT
func FromEnv(w io.Writer) *slog.Logger {
	return New(os.Getenv(EnvLevel), os.Getenv(EnvFormat), w)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
