// Package naming derives output paths for composited images.
//
// Both functions are total: they accept any path, including names without an
// extension or with several dots, and never return a path equal to one of
// their inputs.
package naming

import (
	"path/filepath"
	"strings"
)

// DefaultExt is used when neither input carries an extension.
const DefaultExt = ".png"

// Suffix is appended to a stem when a derived name would collide with an input.
const Suffix = "_out"

// Combine joins the stems of primary and secondary into a path next to primary.
//
//	Combine("art/temple.png", "fx/fire.png") == "art/templefire.png"
//
// The extension is taken from secondary, then primary, then [DefaultExt].
func Combine(primary, secondary string) string {
	dir, stem, ext := split(primary)
	_, other, otherExt := split(secondary)
	if otherExt != "" {
		ext = otherExt
	}
	return distinct(dir, stem+other, ext, primary, secondary)
}

// WithSuffix appends suffix to the stem of primary, keeping its directory and extension.
//
//	WithSuffix("fire2_64.png", "_out") == "fire2_64_out.png"
func WithSuffix(primary, suffix string) string {
	dir, stem, ext := split(primary)
	return distinct(dir, stem+suffix, ext, primary)
}

func split(path string) (dir, stem, ext string) {
	dir, base := filepath.Split(path)
	ext = filepath.Ext(base)
	// Dotfiles like ".png" are all stem.
	if ext == base {
		ext = ""
	}
	return dir, strings.TrimSuffix(base, ext), ext
}

func distinct(dir, stem, ext string, inputs ...string) string {
	if ext == "" {
		ext = DefaultExt
	}
	for {
		out := dir + stem + ext
		if !collides(out, inputs) {
			return out
		}
		stem += Suffix
	}
}

func collides(out string, inputs []string) bool {
	for _, in := range inputs {
		if filepath.Clean(out) == filepath.Clean(in) {
			return true
		}
	}
	return false
}
