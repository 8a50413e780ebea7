package naming

import "testing"

func TestCombine(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		secondary string
		want      string
	}{
		{"plain", "temple.png", "fire.png", "templefire.png"},
		{"keeps primary dir", "art/temple.png", "fx/fire.png", "art/templefire.png"},
		{"secondary ext wins", "temple.bmp", "fire.png", "templefire.png"},
		{"primary ext fallback", "temple.tiff", "fire", "templefire.tiff"},
		{"no ext anywhere", "temple", "fire", "templefire.png"},
		{"multiple dots", "temple.v2.png", "fire.final.png", "temple.v2fire.final.png"},
		{"no marker in name", "sheet_base.png", "sparks.png", "sheet_basesparks.png"},
		{"dotfile secondary", "temple.png", ".png", "temple.png.png"},
		{"empty secondary", "temple.png", "", "temple_out.png"},
		{"absolute", "/tmp/a.png", "/var/b.png", "/tmp/ab.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.primary, tt.secondary); got != tt.want {
				t.Errorf("Combine(%q, %q) = %q, want %q", tt.primary, tt.secondary, got, tt.want)
			}
		})
	}
}

func TestWithSuffix(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		suffix  string
		want    string
	}{
		{"plain", "fire2_64.png", "_out", "fire2_64_out.png"},
		{"dir", "sprites/fire.png", "_out", "sprites/fire_out.png"},
		{"no ext", "fire", "_grid", "fire_grid.png"},
		{"multiple dots", "fire.v1.png", "_out", "fire.v1_out.png"},
		{"empty suffix", "fire.png", "", "fire_out.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithSuffix(tt.primary, tt.suffix); got != tt.want {
				t.Errorf("WithSuffix(%q, %q) = %q, want %q", tt.primary, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestNeverReturnsInput(t *testing.T) {
	pairs := [][2]string{
		{"a.png", ""},
		{"./a.png", ""},
		{"a", ".png"},
		{"dir/a.png", "dir/.png"},
	}
	for _, p := range pairs {
		got := Combine(p[0], p[1])
		if got == p[0] || got == p[1] {
			t.Errorf("Combine(%q, %q) = %q collides with an input", p[0], p[1], got)
		}
	}
	if got := WithSuffix("a.png", ""); got == "a.png" {
		t.Errorf("WithSuffix returned its input")
	}
}
