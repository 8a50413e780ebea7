package composite

import (
	"image"
	"image/color"

	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

// CellGeometry is the size of one grid cell.
type CellGeometry struct {
	Width  int `json:"width" toml:"width" yaml:"width"`
	Height int `json:"height" toml:"height" yaml:"height"`
}

// Validate checks that both dimensions are positive.
func (g CellGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return errors.New(errors.ErrCodeGeometry, "cell geometry %dx%d must be positive", g.Width, g.Height)
	}
	return nil
}

// Grid copies src and draws the top and left edge of every cell in c.
//
// Cell origins step by g.Width and g.Height from (0,0). The right and
// bottom edge of the last column and row are only drawn when the image
// size is a multiple of the cell size plus one, i.e. when another cell
// origin lands on them.
func Grid(src *raster.Image, g CellGeometry, c color.NRGBA) (*raster.Canvas, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	canvas, err := raster.NewCanvas(src.Width(), src.Height())
	if err != nil {
		return nil, err
	}
	canvas.Copy(src, image.Point{})

	w, h := src.Width(), src.Height()
	for gx := 0; gx < w; gx += g.Width {
		for gy := 0; gy < h; gy += g.Height {
			canvas.HLine(gx, min(gx+g.Width, w), gy, c)
			canvas.VLine(gx, gy, min(gy+g.Height, h), c)
		}
	}
	return canvas, nil
}
