package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestMake(t *testing.T) {
	tests := []struct {
		name         string
		w, h, edge   int
		wantW, wantH int
	}{
		{"landscape scaled", 800, 400, 200, 200, 100},
		{"portrait scaled", 400, 800, 200, 100, 200},
		{"small image kept", 40, 30, 256, 40, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Make(bytes.NewReader(pngOf(t, tt.w, tt.h)), tt.edge)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			img, err := jpeg.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output is not a JPEG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, b.Dx(), b.Dy())
			}
		})
	}
}

func TestMakeRejectsNonImage(t *testing.T) {
	if _, err := Make(strings.NewReader("plain text"), 128); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClampEdge(t *testing.T) {
	tests := map[int]int{0: DefaultEdge, -5: DefaultEdge, 64: 64, 5000: MaxEdge}
	for in, want := range tests {
		if got := ClampEdge(in); got != want {
			t.Errorf("ClampEdge(%d) = %d, want %d", in, got, want)
		}
	}
}
