// Package config loads and saves salesmap's user configuration.
//
// The default file lives at $XDG_CONFIG_HOME/salesmap/config.toml (falling
// back to ~/.config/salesmap/config.toml) and can be redirected with the
// SALESMAP_CONFIG environment variable. Files ending in .yaml or .yml are
// read and written as YAML; everything else is TOML.
//
// A missing default file is not an error: [Load] returns [Default]. Command
// line flags take precedence over anything loaded here.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/salesmap/pkg/errors"
	"github.com/matzehuels/salesmap/pkg/palette"
	"github.com/matzehuels/salesmap/pkg/source"
)

// EnvPath overrides [Path] when set.
const EnvPath = "SALESMAP_CONFIG"

// Config holds all salesmap configuration.
type Config struct {
	Source SourceConfig `toml:"source" yaml:"source"`
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`

	// Palette overrides or extends the category colour table.
	Palette map[string]string `toml:"palette,omitempty" yaml:"palette,omitempty" validate:"dive,keys,required,endkeys,hexcolor"`
}

// SourceConfig controls where the dataset comes from and how it is fetched.
type SourceConfig struct {
	URL     string `toml:"url" yaml:"url" validate:"required"`
	DelayMS int    `toml:"delay_ms" yaml:"delay_ms" validate:"gte=0,lte=60000"`
	Retries int    `toml:"retries" yaml:"retries" validate:"gte=1,lte=10"`
}

// LayoutConfig holds the treemap geometry.
type LayoutConfig struct {
	Width  float64 `toml:"width" yaml:"width" validate:"gt=0"`
	Height float64 `toml:"height" yaml:"height" validate:"gt=0"`
	Tiling string  `toml:"tiling" yaml:"tiling" validate:"oneof=squarify slice dice slice-dice binary"`
	Round  bool    `toml:"round" yaml:"round"`
}

// RenderConfig holds output preferences.
type RenderConfig struct {
	Style       string   `toml:"style" yaml:"style" validate:"oneof=simple flat"`
	Formats     []string `toml:"formats" yaml:"formats" validate:"min=1,dive,oneof=svg html json png pdf"`
	Tooltips    bool     `toml:"tooltips" yaml:"tooltips"`
	Title       string   `toml:"title,omitempty" yaml:"title,omitempty" validate:"max=200"`
	Description string   `toml:"description,omitempty" yaml:"description,omitempty" validate:"max=500"`
	Scale       float64  `toml:"scale" yaml:"scale" validate:"gt=0,lte=8"`
}

// CacheConfig selects the cache backend: a directory, "none", or a
// redis:// URL. Empty means the default cache directory.
type CacheConfig struct {
	Target string `toml:"target,omitempty" yaml:"target,omitempty"`
	// Prefix namespaces every key, for backends shared between setups.
	Prefix string `toml:"prefix,omitempty" yaml:"prefix,omitempty" validate:"omitempty,max=64,printascii"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Source: SourceConfig{
			URL:     source.DefaultURL,
			DelayMS: int(source.ReferenceDelay / time.Millisecond),
			Retries: 1,
		},
		Layout: LayoutConfig{
			Width:  1080,
			Height: 600,
			Tiling: "squarify",
		},
		Render: RenderConfig{
			Style:    "simple",
			Formats:  []string{"svg"},
			Tooltips: true,
			Scale:    2,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "salesmap")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "salesmap")
}

// Path returns the config file location, honouring [EnvPath].
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path on top of [Default] and validates the
// result. An empty path means [Path]; a missing file at the default location
// yields the defaults, while a missing explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return Default(), errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
			}
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Decode(data, isYAML(path))
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Decode parses data over [Default]. Keys absent from data keep their
// default values.
func Decode(data []byte, asYAML bool) (Config, error) {
	cfg := Default()
	if asYAML {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Encode serializes cfg as TOML or YAML.
func Encode(cfg Config, asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(cfg)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save validates cfg and writes it to path (empty means [Path]), creating
// the parent directory.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := Encode(cfg, isYAML(path))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists reports whether a config file is present at [Path].
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports the first violation as an
// ErrCodeInvalidConfig error naming the offending key.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", field, fe.Param(), fe.Value())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex colour, got %v", field, fe.Value())
	case "gt", "gte", "lte", "min", "max":
		return fmt.Sprintf("%s fails %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

// Delay returns the pre-fetch delay as a duration.
func (s SourceConfig) Delay() time.Duration { return time.Duration(s.DelayMS) * time.Millisecond }

// ColorTable returns the default palette with the [palette] overrides applied.
func (c Config) ColorTable() (*palette.Table, error) {
	if len(c.Palette) == 0 {
		return palette.Default(), nil
	}
	return palette.Default().WithOverrides(c.Palette)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
