package composite

import (
	"image"

	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

// StackVertical places top above bottom on a canvas as wide as the wider
// input. Columns an input does not reach stay fully transparent.
func StackVertical(top, bottom *raster.Image) (*raster.Canvas, error) {
	w := max(top.Width(), bottom.Width())
	h := top.Height() + bottom.Height()
	if w == 0 || h == 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "stacking %v over %v gives an empty canvas", top, bottom)
	}

	canvas, err := raster.NewCanvas(w, h)
	if err != nil {
		return nil, err
	}
	canvas.Copy(top, image.Point{})
	canvas.Copy(bottom, image.Pt(0, top.Height()))
	return canvas, nil
}
