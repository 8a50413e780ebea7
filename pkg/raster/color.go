package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/spritestrip/pkg/errors"
)

// DefaultGridColor is opaque red.
var DefaultGridColor = color.NRGBA{R: 255, A: 255}

// ParseColor parses a pixel color.
//
// Accepted forms:
//   - "#rgb" and "#rrggbb" (opaque)
//   - "#rrggbbaa"
//   - "r,g,b" or "r,g,b,a" with decimal channels in [0,255]
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if strings.Contains(s, ",") {
		return parseQuad(s)
	}
	return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q (want #rrggbb[aa] or r,g,b[,a])", s)
}

const hexDigits = "0123456789abcdefABCDEF"

func parseHex(s string) (color.NRGBA, error) {
	switch len(s) {
	case 4, 7, 9:
	default:
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q (want #rgb, #rrggbb or #rrggbbaa)", s)
	}
	if strings.TrimLeft(s[1:], hexDigits) != "" {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q (not a hex number)", s)
	}
	alpha := uint8(255)
	rgb := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid alpha in %q", s)
		}
		alpha = uint8(a)
		rgb = s[:7]
	}
	c, err := colorful.Hex(rgb)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseQuad(s string) (color.NRGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "color %q needs 3 or 4 channels", s)
	}
	ch := [4]uint8{0, 0, 0, 255}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid channel %d in %q", i, s)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// FormatColor renders c as "#rrggbbaa".
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
