package file

import (
	"errors"
	"testing"

	"fileshare/internal/domain/apperr"
)

func TestCleanName(t *testing.T) {
	valid := map[string]string{
		"report.pdf":      "report.pdf",
		" notes.txt ":     "notes.txt",
		"My File (1).txt": "My File (1).txt",
	}
	for in, want := range valid {
		got, err := CleanName(in)
		if err != nil {
			t.Errorf("CleanName(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("CleanName(%q) = %q, want %q", in, got, want)
		}
	}

	invalid := []string{
		"",
		".",
		"..",
		"../../etc/passwd",
		"..\\..\\windows\\win.ini",
		"sub/dir.txt",
		"/etc/passwd",
		".env",
		"users.json",
		"Server_Config.json",
		"file_stats.json",
		"app.py",
		"server.log",
		"bad\x00name.txt",
	}
	for _, in := range invalid {
		_, err := CleanName(in)
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("CleanName(%q) = %v, want ErrInvalidName", in, err)
		}
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("CleanName(%q) error is not a validation error", in)
		}
	}
}

func TestUploadName(t *testing.T) {
	got, err := UploadName(`C:\Users\me\photo.jpg`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "photo.jpg" {
		t.Errorf("expected photo.jpg, got %q", got)
	}

	if _, err := UploadName("../secret.txt"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected traversal to be rejected, got %v", err)
	}
}

func TestUploadBase(t *testing.T) {
	got, err := UploadBase(`C:\scripts\tool.py`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "tool.py" {
		t.Errorf("expected tool.py, got %q", got)
	}
	for _, in := range []string{"", "dir/", "a/../b.txt"} {
		if _, err := UploadBase(in); !errors.Is(err, ErrInvalidName) {
			t.Errorf("UploadBase(%q) = %v, want ErrInvalidName", in, err)
		}
	}
}

func TestIsVisible(t *testing.T) {
	tests := map[string]bool{
		"photo.jpg":       true,
		".hidden":         false,
		"users.json":      false,
		"data.json":       true,
		"script.PY":       false,
		"cache.pyc":       false,
		"run.bat":         false,
		"file_server.log": false,
		"setup.exe":       true,
		"run.sh":          true,
		"cache.tmp":       true,
	}
	for name, want := range tests {
		if got := IsVisible(name); got != want {
			t.Errorf("IsVisible(%q) = %v, want %v", name, got, want)
		}
	}
}
