package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func dirOpener(dir string) Opener {
	return func(name string) (*os.File, error) {
		return os.Open(filepath.Join(dir, name))
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0644)
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("bravo"), 0644)

	data, included, err := Build(context.Background(), []string{"a.txt", "missing.txt", "b.txt"}, dirOpener(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(included) != 2 {
		t.Fatalf("expected 2 included files, got %v", included)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("invalid zip: %v", err)
	}
	contents := map[string]string{}
	for _, f := range zr.File {
		if f.Method != zip.Deflate {
			t.Errorf("expected deflate for %s", f.Name)
		}
		rc, _ := f.Open()
		b, _ := io.ReadAll(rc)
		rc.Close()
		contents[f.Name] = string(b)
	}
	if contents["a.txt"] != "alpha" || contents["b.txt"] != "bravo" {
		t.Errorf("unexpected archive contents %v", contents)
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Build(ctx, []string{"a.txt"}, dirOpener(t.TempDir()))
	if err == nil {
		t.Fatal("expected context error")
	}
}
