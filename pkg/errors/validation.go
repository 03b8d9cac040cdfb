package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateURL validates a dataset URL.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !IsURL(rawURL) {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsURL reports whether s looks like an http(s) URL rather than a file path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ValidateDimensions checks that a bounding box is finite and has positive area.
func ValidateDimensions(width, height float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return New(ErrCodeInvalidInput, "width must be a positive number, got %v", width)
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidInput, "height must be a positive number, got %v", height)
	}
	return nil
}

// ValidateCategoryCode checks a platform code used as a palette key.
//
// Validation rules:
//   - Code cannot be empty
//   - Maximum length of 16 characters
//   - Letters and digits only
func ValidateCategoryCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidPalette, "category code cannot be empty")
	}
	if len(code) > 16 {
		return New(ErrCodeInvalidPalette, "category code too long (max 16 characters): %q", code)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidPalette, "category code contains invalid characters: %q", code)
		}
	}
	return nil
}

// ValidateHexColor checks a CSS hex colour of the form #rgb or #rrggbb.
func ValidateHexColor(color string) error {
	if !strings.HasPrefix(color, "#") || (len(color) != 4 && len(color) != 7) {
		return New(ErrCodeInvalidPalette, "invalid hex color: %q", color)
	}
	for _, r := range color[1:] {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return New(ErrCodeInvalidPalette, "invalid hex color: %q", color)
		}
	}
	return nil
}
