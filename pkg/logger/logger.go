// Package logger configures structured logging for the instc compiler
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// Config holds logger configuration
type Config struct {
	Verbose bool
	Format  string // "text" or "json"
	Output  io.Writer
}

// DefaultConfig returns the default logger configuration: warnings and
// errors only, as text on stderr
func DefaultConfig() Config {
	return Config{
		Format: "text",
		Output: os.Stderr,
	}
}

// Init installs a logger built from cfg as the process default
func Init(cfg Config) error {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if cfg.Verbose {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	switch cfg.Format {
	case "", "text":
		handler = slog.NewTextHandler(output, opts)
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", cfg.Format)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return nil
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Warn(msg, args...)
	}
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger.With(args...)
	}
	return slog.Default().With(args...)
}
