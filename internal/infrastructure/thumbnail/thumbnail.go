// Package thumbnail renders small JPEG previews of shared images.
package thumbnail

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"io"

	// decoders
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultEdge = 256
	MaxEdge     = 1024
)

var ErrEmptyImage = errors.New("image has no pixels")

// ClampEdge maps a requested edge length into [1, MaxEdge], with DefaultEdge
// for non-positive input.
func ClampEdge(edge int) int {
	if edge <= 0 {
		return DefaultEdge
	}
	if edge > MaxEdge {
		return MaxEdge
	}
	return edge
}

// Make decodes an image from r and scales its longest edge down to maxEdge.
// Smaller images keep their size. The result is JPEG encoded.
func Make(r io.Reader, maxEdge int) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	max := ClampEdge(maxEdge)

	nw, nh := w, h
	if w > h {
		if w > max {
			nw = max
			nh = int(float64(h) * (float64(max) / float64(w)))
		}
	} else {
		if h > max {
			nh = max
			nw = int(float64(w) * (float64(max) / float64(h)))
		}
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: 82}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
