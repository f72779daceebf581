// Package logging provides a shared, structured logger for the cli-gallery
// application.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so all components share the same output handler and
// log level. The log level can be controlled at startup via the
// CLI_GALLERY_LOG_LEVEL environment variable (debug, info, warn, error).
// If unset, the default level is INFO.
//
// Usage:
//
//	log := logging.New("catalog")       // creates a logger tagged with component="catalog"
//	log.Info("loaded catalog", "path", p)
//	log.Error("failed to save", "error", err)
//
// Output goes to stderr until Configure points it at a file. The terminal UI
// owns the screen while it runs, so the gallery command sends logs to a
// size-rotated file (see Configure) rather than the terminal.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 5
	maxLogBackups = 3
	maxLogAgeDays = 14
)

var (
	// initLogger ensures the base logger is created exactly once across all
	// goroutines, even if multiple components call New concurrently.
	initLogger sync.Once

	// baseLogger is the singleton logger instance shared by all components.
	// Component-specific loggers are derived from this via With().
	baseLogger *slog.Logger

	// level and output are shared by every derived logger, so Configure can
	// retarget loggers that package-level vars created during init.
	level  = new(slog.LevelVar)
	output = &swapWriter{w: os.Stderr}
)

// Options selects the level and destination applied by Configure.
type Options struct {
	// Level is one of debug, info, warn, error. Empty keeps the level taken
	// from CLI_GALLERY_LOG_LEVEL.
	Level string
	// File is a log file path. Empty keeps logging on stderr.
	File string
}

// New returns a structured logger scoped to the given component name.
//
// The component name is added as a "component" attribute to every log entry
// produced by the returned logger, making it easy to filter logs by subsystem
// (e.g. "app", "catalog", "media").
//
// If component is empty, the base logger is returned without any additional
// attributes. The underlying base logger is lazily initialized on the first
// call and reused for all subsequent calls.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		level.Set(parseLevel(os.Getenv("CLI_GALLERY_LOG_LEVEL")))
		baseLogger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// Configure applies level and destination overrides. When opts.File is set,
// output is written through a lumberjack rotating writer; the returned
// closer flushes and closes it.
func Configure(opts Options) (io.Closer, error) {
	New("")
	if strings.TrimSpace(opts.Level) != "" {
		level.Set(parseLevel(opts.Level))
	}
	path := strings.TrimSpace(opts.File)
	if path == "" {
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nopCloser{}, err
	}
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}
	output.set(writer)
	return writer, nil
}

// parseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo (the default)
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

type swapWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *swapWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *swapWriter) set(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
