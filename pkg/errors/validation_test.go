package errors

import (
	"strings"
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"jquery", false},
		{"node-fetch", false},
		{"babel__core", false},
		{"lodash.debounce", false},
		{"@babel/core", false},
		{"~tilde", false},

		{"", true},
		{strings.Repeat("a", 215), true},
		{"JQuery", true},
		{".hidden", true},
		{"../etc", true},
		{"@scope/../x", true},
		{"foo/bar", true},
		{"foo bar", true},
		{"foo\x00bar", true},
		{"foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("ValidatePackageName(%q) code = %s", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://registry.npmjs.org", false},
		{"http://127.0.0.1:4873/", false},

		{"", true},
		{"ftp://example.com", true},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"registry.npmjs.org", true},
		{"https://", true},
		{"http://[::1", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"jquery", false},
		{"node/v18", false},
		{"react/v16.8/index.d.ts", false},

		{"", true},
		{".", true},
		{"/etc/passwd", true},
		{"../outside", true},
		{"node/../jquery", true},
		{"node//v18", true},
		{"node/", true},
		{"./node", true},
		{"node\\v18", true},
		{"node\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %s", tt.input, GetCode(err))
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeValidation,
		ErrCodeTool,
		ErrCodeTest,
		ErrCodeRegistryInconsistency,
		ErrCodeInvalidVersion,
		ErrCodeMissingVersion,
		ErrCodeInvalidInput,
		ErrCodeInvalidPackage,
		ErrCodeInvalidPath,
		ErrCodeInvalidConfig,
		ErrCodeNotFound,
		ErrCodeNetwork,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
