// Package logging builds the application's *slog.Logger.
//
// Stdout belongs to the interactive menu, so logs go to a rotating file
// (lumberjack) instead. Without a configured path they go to stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aanand-mishra/students-cli/internal/config"
)

// Setup returns a logger for the given environment and installs it as the
// slog default.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON output at DEBUG level.
// Production (prod): JSON output at INFO level.
func Setup(env string, cfg config.Log) *slog.Logger {
	logger := New(env, Writer(cfg))
	slog.SetDefault(logger)
	return logger
}

// New builds a logger for env writing to w.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
}

// Writer returns the log destination described by cfg.
func Writer(cfg config.Log) io.Writer {
	if cfg.Path == "" {
		return os.Stderr
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("failed to prepare log directory, logging to stderr",
				slog.String("path", cfg.Path),
				slog.String("error", err.Error()))
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
