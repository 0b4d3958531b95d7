package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file written inside the log directory.
const FileName = "file_server.log"

// Rotation limits for the log file.
const (
	MaxSizeMB  = 10
	MaxBackups = 10
)

// New creates a structured logger that writes to both logDir/file_server.log
// and stderr. The file rotates at MaxSizeMB, keeping MaxBackups old files.
// The caller closes the returned writer.
func New(logDir, level string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	f := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, FileName),
		MaxSize:    MaxSizeMB,
		MaxBackups: MaxBackups,
	}

	w := io.MultiWriter(f, os.Stderr)
	return NewWriter(w, level), f, nil
}

// NewWriter creates a text logger on w.
func NewWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name onto slog; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
