package raster

import (
	"image"

	"github.com/matzehuels/spritestrip/pkg/errors"
)

// CheckRegion returns an INVALID_GEOMETRY error unless r lies inside bounds.
// name identifies the region in the message, e.g. "overlay frame 3".
// Empty regions always pass.
func CheckRegion(name string, r, bounds image.Rectangle) error {
	if r.In(bounds) {
		return nil
	}
	return errors.New(errors.ErrCodeGeometry, "%s %v falls outside %v", name, r, bounds)
}
