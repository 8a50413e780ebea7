package composite

import (
	"image/color"
	"testing"

	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

func TestFilmstripRedBlueScenario(t *testing.T) {
	base := raster.Uniform(2, 2, red)
	overlay := build(4, 2, func(x, y int) color.NRGBA {
		if x < 2 {
			return color.NRGBA{R: 9, G: 9, B: 9, A: 0}
		}
		return blue
	})

	canvas, err := Filmstrip(base, overlay, FrameGeometry{Width: 2, Height: 2, Count: 2})
	if err != nil {
		t.Fatalf("Filmstrip: %v", err)
	}
	if canvas.Width() != 4 || canvas.Height() != 2 {
		t.Fatalf("canvas = %dx%d, want 4x2", canvas.Width(), canvas.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assertPixel(t, canvas, x, y, red)
			assertPixel(t, canvas, x+2, y, blue)
		}
	}
}

func TestFilmstripCapacityScenario(t *testing.T) {
	base := raster.Uniform(2, 2, red)
	overlay := raster.Uniform(4, 2, blue)

	canvas, err := Filmstrip(base, overlay, FrameGeometry{Width: 2, Height: 2, Count: 3})
	if !errors.IsCapacity(err) {
		t.Fatalf("error = %v, want CAPACITY_EXCEEDED", err)
	}
	if canvas != nil {
		t.Error("expected no canvas on failure")
	}
}

func TestFilmstripCapacityBoundary(t *testing.T) {
	base := raster.Uniform(4, 1, gray)

	for ow := 1; ow <= 9; ow++ {
		overlay := raster.Uniform(ow, 1, blue)
		for fw := 1; fw <= 4; fw++ {
			for count := 1; count <= 5; count++ {
				_, err := Filmstrip(base, overlay, FrameGeometry{Width: fw, Height: 1, Count: count})
				wantCapacity := count > ow/fw
				if wantCapacity {
					if !errors.IsCapacity(err) {
						t.Errorf("ow=%d fw=%d count=%d: error = %v, want CAPACITY_EXCEEDED", ow, fw, count, err)
					}
					continue
				}
				if err != nil {
					t.Errorf("ow=%d fw=%d count=%d: unexpected error %v", ow, fw, count, err)
				}
			}
		}
	}
}

func TestFilmstripSize(t *testing.T) {
	tests := []struct {
		name          string
		base, overlay *raster.Image
		g             FrameGeometry
		wantW, wantH  int
	}{
		{
			name:    "overlay taller",
			base:    raster.Uniform(3, 2, red),
			overlay: raster.Uniform(6, 5, transparent),
			g:       FrameGeometry{Width: 2, Height: 5, Count: 3},
			wantW:   9,
			wantH:   5,
		},
		{
			name:    "base taller",
			base:    raster.Uniform(3, 6, red),
			overlay: raster.Uniform(6, 2, transparent),
			g:       FrameGeometry{Width: 2, Height: 2, Count: 3},
			wantW:   9,
			wantH:   6,
		},
		{
			name:    "single frame",
			base:    raster.Uniform(64, 64, red),
			overlay: raster.Uniform(640, 64, transparent),
			g:       FrameGeometry{Width: 64, Height: 64, Count: 1},
			wantW:   64,
			wantH:   64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas, err := Filmstrip(tt.base, tt.overlay, tt.g)
			if err != nil {
				t.Fatalf("Filmstrip: %v", err)
			}
			if canvas.Width() != tt.wantW || canvas.Height() != tt.wantH {
				t.Errorf("canvas = %dx%d, want %dx%d", canvas.Width(), canvas.Height(), tt.wantW, tt.wantH)
			}
			if w, h := FilmstripSize(tt.base, tt.overlay, tt.g); w != tt.wantW || h != tt.wantH {
				t.Errorf("FilmstripSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFilmstripWrapsBaseRows(t *testing.T) {
	base := build(2, 2, func(x, y int) color.NRGBA {
		if y == 0 {
			return color.NRGBA{R: uint8(100 + x), A: 255}
		}
		return color.NRGBA{G: uint8(100 + x), A: 255}
	})
	overlay := raster.Uniform(4, 5, transparent)

	canvas, err := Filmstrip(base, overlay, FrameGeometry{Width: 2, Height: 1, Count: 2})
	if err != nil {
		t.Fatalf("Filmstrip: %v", err)
	}
	if canvas.Height() != 5 {
		t.Fatalf("height = %d, want 5", canvas.Height())
	}

	for i := 0; i < 2; i++ {
		for x := 0; x < 2; x++ {
			for y := 0; y < canvas.Height(); y++ {
				assertPixel(t, canvas, i*2+x, y, base.At(x, y%2))
			}
		}
	}
	for x := 0; x < base.Width(); x++ {
		if canvas.At(x, base.Height()) != canvas.At(x, 0) {
			t.Errorf("row %d at x=%d does not repeat row 0", base.Height(), x)
		}
	}
}

func TestFilmstripAlphaGate(t *testing.T) {
	// Alpha cycles through 0, 1, 128, 255 so every gate outcome is covered,
	// and zero-alpha pixels carry color that must not leak through.
	alphas := []uint8{0, 1, 128, 255}
	overlay := build(4, 3, func(x, y int) color.NRGBA {
		return color.NRGBA{R: uint8(10 * x), G: uint8(10 * y), B: 200, A: alphas[(x+y)%4]}
	})
	base := raster.Uniform(4, 3, gray)
	g := FrameGeometry{Width: 2, Height: 3, Count: 2}

	canvas, err := Filmstrip(base, overlay, g)
	if err != nil {
		t.Fatalf("Filmstrip: %v", err)
	}

	dx := 1 // (4 - 2) / 2
	stamped := map[[2]int]bool{}
	for i := 0; i < g.Count; i++ {
		for x := 0; x < g.Width; x++ {
			for y := 0; y < g.Height; y++ {
				src := overlay.At(x+i*g.Width, y)
				dstX := i*base.Width() + x + dx
				stamped[[2]int{dstX, y}] = true
				if src.A == 0 {
					assertPixel(t, canvas, dstX, y, gray)
				} else {
					assertPixel(t, canvas, dstX, y, src)
				}
			}
		}
	}

	for y := 0; y < canvas.Height(); y++ {
		for x := 0; x < canvas.Width(); x++ {
			if !stamped[[2]int{x, y}] {
				assertPixel(t, canvas, x, y, gray)
			}
		}
	}
}

func TestFilmstripCentersFrames(t *testing.T) {
	base := raster.Uniform(5, 1, gray)
	overlay := raster.Uniform(4, 1, red)

	canvas, err := Filmstrip(base, overlay, FrameGeometry{Width: 2, Height: 1, Count: 2})
	if err != nil {
		t.Fatalf("Filmstrip: %v", err)
	}

	// (5-2)/2 truncates to 1: each tile reads gray, red, red, gray, gray.
	want := []color.NRGBA{gray, red, red, gray, gray, gray, red, red, gray, gray}
	for x, w := range want {
		assertPixel(t, canvas, x, 0, w)
	}
}

func TestFilmstripOverlayShorterThanBase(t *testing.T) {
	base := raster.Uniform(2, 4, gray)
	overlay := raster.Uniform(2, 2, red)

	canvas, err := Filmstrip(base, overlay, FrameGeometry{Width: 2, Height: 2, Count: 1})
	if err != nil {
		t.Fatalf("Filmstrip: %v", err)
	}
	for y := 0; y < 4; y++ {
		want := gray
		if y < 2 {
			want = red
		}
		assertPixel(t, canvas, 0, y, want)
	}
}

func TestFilmstripGeometryErrors(t *testing.T) {
	tests := []struct {
		name          string
		base, overlay *raster.Image
		g             FrameGeometry
	}{
		{"zero count", raster.Uniform(2, 2, red), raster.Uniform(4, 2, blue), FrameGeometry{2, 2, 0}},
		{"zero width", raster.Uniform(2, 2, red), raster.Uniform(4, 2, blue), FrameGeometry{0, 2, 1}},
		{"negative height", raster.Uniform(2, 2, red), raster.Uniform(4, 2, blue), FrameGeometry{2, -1, 1}},
		{"frame taller than overlay", raster.Uniform(2, 4, red), raster.Uniform(4, 2, blue), FrameGeometry{2, 3, 2}},
		{"frame wider than base", raster.Uniform(2, 2, red), raster.Uniform(6, 2, blue), FrameGeometry{3, 2, 2}},
		{"empty base", raster.Uniform(0, 0, red), raster.Uniform(4, 2, blue), FrameGeometry{2, 2, 1}},
		{"zero-height base", raster.Uniform(2, 0, red), raster.Uniform(4, 2, blue), FrameGeometry{2, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas, err := Filmstrip(tt.base, tt.overlay, tt.g)
			if !errors.IsGeometry(err) {
				t.Fatalf("error = %v, want INVALID_GEOMETRY", err)
			}
			if canvas != nil {
				t.Error("expected no canvas on failure")
			}
		})
	}
}

func TestFilmstripCapacityCheckedBeforeEmptyBase(t *testing.T) {
	_, err := Filmstrip(raster.Uniform(0, 0, red), raster.Uniform(4, 2, blue), FrameGeometry{2, 2, 3})
	if !errors.IsCapacity(err) {
		t.Fatalf("error = %v, want CAPACITY_EXCEEDED", err)
	}
}

func TestFilmstripLeavesInputsUntouched(t *testing.T) {
	base := raster.Uniform(2, 2, red)
	overlay := raster.Uniform(4, 2, blue)

	if _, err := Filmstrip(base, overlay, FrameGeometry{Width: 2, Height: 2, Count: 2}); err != nil {
		t.Fatalf("Filmstrip: %v", err)
	}
	if base.At(1, 1) != red || overlay.At(3, 1) != blue {
		t.Error("inputs were modified")
	}
}
