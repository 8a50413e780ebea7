package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/matzehuels/spritestrip/pkg/errors"
)

// Canvas is the mutable output buffer of one operation.
// A new canvas is fully transparent black.
type Canvas struct {
	pix *image.NRGBA
}

// NewCanvas allocates a zeroed w×h canvas.
func NewCanvas(w, h int) (*Canvas, error) {
	if w < 0 || h < 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "canvas size %dx%d is negative", w, h)
	}
	return &Canvas{pix: image.NewNRGBA(image.Rect(0, 0, w, h))}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.pix.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.pix.Rect.Dy() }

// Bounds returns (0,0)-(Width,Height).
func (c *Canvas) Bounds() image.Rectangle { return c.pix.Rect }

// At returns the pixel at (x, y). It panics outside the canvas.
func (c *Canvas) At(x, y int) color.NRGBA {
	c.mustContain(x, y)
	i := c.pix.PixOffset(x, y)
	s := c.pix.Pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// Set replaces the pixel at (x, y). It panics outside the canvas.
func (c *Canvas) Set(x, y int, p color.NRGBA) {
	c.mustContain(x, y)
	i := c.pix.PixOffset(x, y)
	s := c.pix.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = p.R, p.G, p.B, p.A
}

// CopyRow copies row sy of src so that its first pixel lands on dst.
func (c *Canvas) CopyRow(src *Image, sy int, dst image.Point) {
	if sy < 0 || sy >= src.Height() {
		panic(fmt.Sprintf("raster: source row %d outside %v", sy, src.Bounds()))
	}
	c.mustCover(image.Rect(dst.X, dst.Y, dst.X+src.Width(), dst.Y+1))
	copy(c.pix.Pix[c.pix.PixOffset(dst.X, dst.Y):], src.row(sy))
}

// Copy copies all of src so that its top-left pixel lands on dst.
// Bytes are copied verbatim; nothing is blended.
func (c *Canvas) Copy(src *Image, dst image.Point) {
	c.mustCover(src.Bounds().Add(dst))
	for y := 0; y < src.Height(); y++ {
		copy(c.pix.Pix[c.pix.PixOffset(dst.X, dst.Y+y):], src.row(y))
	}
}

// HLine paints row y from x0 (inclusive) to x1 (exclusive).
func (c *Canvas) HLine(x0, x1, y int, p color.NRGBA) {
	for x := x0; x < x1; x++ {
		c.Set(x, y, p)
	}
}

// VLine paints column x from y0 (inclusive) to y1 (exclusive).
func (c *Canvas) VLine(x, y0, y1 int, p color.NRGBA) {
	for y := y0; y < y1; y++ {
		c.Set(x, y, p)
	}
}

// Image hands the pixels over for encoding. The canvas must not be
// written to afterwards.
func (c *Canvas) Image() *image.NRGBA { return c.pix }

func (c *Canvas) mustContain(x, y int) {
	if !(image.Point{x, y}).In(c.pix.Rect) {
		panic(fmt.Sprintf("raster: write (%d,%d) outside %v", x, y, c.pix.Rect))
	}
}

func (c *Canvas) mustCover(r image.Rectangle) {
	if !r.In(c.pix.Rect) {
		panic(fmt.Sprintf("raster: region %v outside %v", r, c.pix.Rect))
	}
}
