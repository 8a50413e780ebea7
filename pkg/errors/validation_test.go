package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "temple.png", false},
		{"relative dir", "assets/fire.png", false},
		{"absolute", "/srv/sprites/fire.png", false},
		{"parent dir", "../shared/base.png", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 1100), true},
		{"null byte", "foo\x00.png", true},
		{"newline", "foo\n.png", true},
		{"directory", "assets/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateJobName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty allowed", "", false},
		{"simple", "temple", false},
		{"derived style", "filmstrip:temple.png+fire.png", false},
		{"with spaces", "temple sheet", false},

		{"leading dash", "-temple", true},
		{"control char", "temple\x01", true},
		{"too long", strings.Repeat("a", 200), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJobName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateJobName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
