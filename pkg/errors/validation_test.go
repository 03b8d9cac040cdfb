package errors

import (
	"math"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://cdn.example.com/sales.json", false},
		{"http", "http://localhost:8080/data.json", false},
		{"empty", "", true},
		{"file path", "./data/sales.json", true},
		{"ftp scheme", "ftp://example.com/sales.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateURL(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"reference size", 1080, 600, false},
		{"fractional", 0.5, 0.5, false},
		{"zero width", 0, 600, true},
		{"negative height", 1080, -1, true},
		{"NaN", math.NaN(), 600, true},
		{"infinite", math.Inf(1), 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCategoryCode(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"PS4", false},
		{"2600", false},
		{"XOne", false},
		{"", true},
		{"PS 4", true},
		{"../etc", true},
		{"ABCDEFGHIJKLMNOPQ", true},
	}

	for _, tt := range tests {
		err := ValidateCategoryCode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCategoryCode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidPalette) {
			t.Errorf("ValidateCategoryCode(%q) returned wrong error code: %v", tt.input, err)
		}
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#5e0106", false},
		{"#FC0411", false},
		{"#fff", false},
		{"5e0106", true},
		{"#5e01", true},
		{"#zzzzzz", true},
		{"", true},
	}

	for _, tt := range tests {
		if err := ValidateHexColor(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidStyle,
		ErrCodeInvalidVizType,
		ErrCodeInvalidTiling,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPalette,
		ErrCodeFetch,
		ErrCodeEmptyTree,
		ErrCodeNonPositiveValue,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
