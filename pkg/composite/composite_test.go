package composite

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/spritestrip/pkg/raster"
)

var (
	red         = color.NRGBA{R: 255, A: 255}
	green       = color.NRGBA{G: 255, A: 255}
	blue        = color.NRGBA{B: 255, A: 255}
	gray        = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	transparent = color.NRGBA{}
)

// build creates an image whose pixel (x, y) is f(x, y).
func build(w, h int, f func(x, y int) color.NRGBA) *raster.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, f(x, y))
		}
	}
	return raster.FromImage(img)
}

func assertPixel(t *testing.T, c *raster.Canvas, x, y int, want color.NRGBA) {
	t.Helper()
	if got := c.At(x, y); got != want {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}
