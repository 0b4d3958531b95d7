package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "file", "a.txt")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should have been filtered")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "file=a.txt") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewCreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, closer, err := New(dir, "info")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("server started")
	closer.Close()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "server started") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestNewRotatesLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := New(dir, "info")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closer.Close()

	rotator, ok := closer.(interface{ Rotate() error })
	if !ok {
		t.Fatalf("expected a rotating writer, got %T", closer)
	}
	logger.Info("before rotation")
	if err := rotator.Rotate(); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	logger.Info("after rotation")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected current file plus one backup, got %d entries", len(entries))
	}
	data, _ := os.ReadFile(filepath.Join(dir, FileName))
	if strings.Contains(string(data), "before rotation") || !strings.Contains(string(data), "after rotation") {
		t.Errorf("unexpected current log contents %q", data)
	}
}
