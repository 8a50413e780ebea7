package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Image is an immutable RGBA input buffer with its origin at (0,0).
type Image struct {
	pix *image.NRGBA
}

// FromImage normalizes src into an Image.
//
// An *image.NRGBA already anchored at (0,0) is wrapped without copying;
// the caller must not modify it afterwards. Everything else is converted
// pixel by pixel through color.NRGBAModel.
func FromImage(src image.Image) *Image {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return &Image{pix: n}
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+4*b.Dx()], n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return &Image{pix: dst}
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.SetNRGBA(x, y, c)
		}
	}
	return &Image{pix: dst}
}

// Uniform returns a w×h image filled with c.
func Uniform(w, h int, c color.NRGBA) *Image {
	pix := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pix.Pix); i += 4 {
		pix.Pix[i+0] = c.R
		pix.Pix[i+1] = c.G
		pix.Pix[i+2] = c.B
		pix.Pix[i+3] = c.A
	}
	return &Image{pix: pix}
}

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.pix.Rect.Dx() }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.pix.Rect.Dy() }

// Bounds returns (0,0)-(Width,Height).
func (im *Image) Bounds() image.Rectangle { return im.pix.Rect }

// Empty reports whether the image has no pixels.
func (im *Image) Empty() bool { return im.pix.Rect.Empty() }

// At returns the pixel at (x, y). It panics outside the image.
func (im *Image) At(x, y int) color.NRGBA {
	if !(image.Point{x, y}).In(im.pix.Rect) {
		panic(fmt.Sprintf("raster: read (%d,%d) outside %v", x, y, im.pix.Rect))
	}
	i := im.pix.PixOffset(x, y)
	s := im.pix.Pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// row returns the raw bytes of row y.
func (im *Image) row(y int) []uint8 {
	i := y * im.pix.Stride
	return im.pix.Pix[i : i+4*im.Width()]
}

func (im *Image) String() string {
	return fmt.Sprintf("%dx%d", im.Width(), im.Height())
}
