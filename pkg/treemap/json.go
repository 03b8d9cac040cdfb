package treemap

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/salesmap/pkg/errors"
)

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout.
// The layout must have a root cell and a positive bounding box.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if l.Root == nil {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout must contain a root cell")
	}
	if err := errors.ValidateDimensions(l.Width, l.Height); err != nil {
		return Layout{}, fmt.Errorf("layout: %w", err)
	}
	if l.Tiling == "" {
		l.Tiling = Squarify
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
