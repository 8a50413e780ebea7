package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxPathLength bounds paths accepted from manifests and flags.
const maxPathLength = 1024

// ValidatePath validates an image path taken from a manifest or the command line.
//
// Validation rules:
//   - Path cannot be empty or whitespace only
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Cannot name a directory (trailing separator)
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters: %q", path)
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory: %q", path)
	}

	return nil
}

// jobNameRegex matches printable job names used in logs and summaries.
var jobNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._:+/-]*$`)

// ValidateJobName validates an optional manifest job name.
// An empty name is valid; the manifest derives one from the inputs.
func ValidateJobName(name string) error {
	if name == "" {
		return nil
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidManifest, "job name too long (max 128 characters)")
	}
	if !jobNameRegex.MatchString(name) {
		return New(ErrCodeInvalidManifest, "invalid job name: %q", name)
	}
	return nil
}
