package composite

import (
	"fmt"
	"image"

	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

// FrameGeometry describes how the overlay strip is cut into frames.
type FrameGeometry struct {
	Width  int `json:"width" toml:"width" yaml:"width"`
	Height int `json:"height" toml:"height" yaml:"height"`
	Count  int `json:"count" toml:"count" yaml:"count"`
}

// Validate checks that every dimension is positive.
func (g FrameGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 || g.Count <= 0 {
		return errors.New(errors.ErrCodeGeometry,
			"frame geometry %dx%d x%d must be positive", g.Width, g.Height, g.Count)
	}
	return nil
}

// Capacity returns how many whole frames fit across overlay.
func (g FrameGeometry) Capacity(overlay *raster.Image) int {
	if g.Width <= 0 {
		return 0
	}
	return overlay.Width() / g.Width
}

// FilmstripSize returns the canvas size Filmstrip produces for the inputs.
func FilmstripSize(base, overlay *raster.Image, g FrameGeometry) (w, h int) {
	return base.Width() * g.Count, max(base.Height(), overlay.Height())
}

// frameOffset centres a frame horizontally inside one tile. A frame wider
// than the tile starts at the tile's left edge.
func frameOffset(tileWidth, frameWidth int) int {
	if tileWidth < frameWidth {
		return 0
	}
	return (tileWidth - frameWidth) / 2
}

// Filmstrip builds a strip of g.Count tiles of base and stamps frame i of
// overlay onto tile i.
//
// The canvas is base.Width()*g.Count wide and as tall as the taller input.
// Each tile repeats base, wrapping its rows when the canvas is taller than
// base. Frame i is the g.Width×g.Height region of overlay starting at
// x = i*g.Width; it is centred horizontally in its tile and top-aligned.
// Frame pixels with alpha 0 keep the tile pixel underneath.
//
// Filmstrip returns CAPACITY_EXCEEDED when overlay holds fewer than g.Count
// frames and INVALID_GEOMETRY when any frame would be read or written out
// of bounds.
func Filmstrip(base, overlay *raster.Image, g FrameGeometry) (*raster.Canvas, error) {
	if err := validateFilmstrip(base, overlay, g); err != nil {
		return nil, err
	}

	w, h := FilmstripSize(base, overlay, g)
	canvas, err := raster.NewCanvas(w, h)
	if err != nil {
		return nil, err
	}

	tileBase(canvas, base, g.Count)
	stampFrames(canvas, overlay, g, base.Width())

	return canvas, nil
}

func validateFilmstrip(base, overlay *raster.Image, g FrameGeometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if capacity := g.Capacity(overlay); g.Count > capacity {
		return errors.New(errors.ErrCodeCapacity,
			"not enough frames in overlay for the requested count: want %d, overlay %v holds %d frames of width %d",
			g.Count, overlay, capacity, g.Width)
	}

	w, h := FilmstripSize(base, overlay, g)
	canvas := image.Rect(0, 0, w, h)
	dx := frameOffset(base.Width(), g.Width)

	// Tiles are uniform, so checking the first and last frame covers all of them.
	for _, i := range []int{0, g.Count - 1} {
		src := frameRect(i, g)
		if err := raster.CheckRegion(fmt.Sprintf("overlay frame %d", i), src, overlay.Bounds()); err != nil {
			return err
		}
		dst := src.Sub(src.Min).Add(image.Pt(i*base.Width()+dx, 0))
		if err := raster.CheckRegion(fmt.Sprintf("destination of frame %d", i), dst, canvas); err != nil {
			return err
		}
	}
	if base.Empty() {
		return errors.New(errors.ErrCodeGeometry, "base image %v is empty", base)
	}
	return nil
}

// frameRect returns the overlay region holding frame i.
func frameRect(i int, g FrameGeometry) image.Rectangle {
	return image.Rect(i*g.Width, 0, (i+1)*g.Width, g.Height)
}

// tileBase fills every tile with base, wrapping rows vertically.
func tileBase(canvas *raster.Canvas, base *raster.Image, count int) {
	for i := 0; i < count; i++ {
		for y := 0; y < canvas.Height(); y++ {
			canvas.CopyRow(base, y%base.Height(), image.Pt(i*base.Width(), y))
		}
	}
}

// stampFrames applies the alpha gate frame by frame.
func stampFrames(canvas *raster.Canvas, overlay *raster.Image, g FrameGeometry, tileWidth int) {
	dx := frameOffset(tileWidth, g.Width)
	for i := 0; i < g.Count; i++ {
		for x := 0; x < g.Width; x++ {
			for y := 0; y < g.Height; y++ {
				src := overlay.At(x+i*g.Width, y)
				if src.A == 0 {
					continue
				}
				canvas.Set(i*tileWidth+x+dx, y, src)
			}
		}
	}
}
