// Package infrastructure wires process-level concerns: the application
// logger is created once here and handed to every component.
package infrastructure

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"dtxcli/internal/config"
)

// InitializeLogger creates the application-wide slog logger from the
// logging configuration and installs it as the slog default. Production
// uses the JSON handler; development mode uses a tint console handler.
func InitializeLogger(cfg config.LoggingConfig) *slog.Logger {
	level := parseLogLevel(cfg.Level)

	var handler slog.Handler
	switch {
	case cfg.Development || cfg.Format == "text":
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts a config level string to a slog level. Unknown
// strings fall back to info.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
