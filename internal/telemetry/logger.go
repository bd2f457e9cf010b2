// Package telemetry sets up file logging and OpenTelemetry for luxchat.
//
// Nothing here writes to stdout or stderr: the chat TUI owns the terminal,
// so logs, traces and metrics all go to rotated files.
package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// newRotatingFile returns a size-rotated writer for path
func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

// InitLogger creates a JSON slog logger writing to a rotated file at path and
// installs it as the default logger. The returned closer flushes the file.
func InitLogger(path string, verbose bool) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file := newRotatingFile(path)
	logger := NewLogger(file, verbose)
	slog.SetDefault(logger)

	return logger, file, nil
}

// NewLogger creates a JSON slog logger on w
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
