// Package pipeline provides the load → layout → render pipeline for salesmap.
//
// The CLI drives everything through this package so that caching, defaults
// and validation behave the same for every command.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: fetch the dataset from a URL (or read a local file) and decode it
//  2. Layout: compute treemap rectangles with [treemap.Compute]
//  3. Render: produce artifacts (SVG, HTML, JSON, PNG, PDF, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
// Rendering is all-or-nothing: if any requested format fails, no artifacts
// are returned.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Formats: []string{"svg", "html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/salesmap/pkg/cache"
	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/errors"
	"github.com/matzehuels/salesmap/pkg/palette"
	"github.com/matzehuels/salesmap/pkg/render/treemap/styles"
	"github.com/matzehuels/salesmap/pkg/source"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the treemap width in pixels.
	DefaultWidth = 1080.0

	// DefaultHeight is the treemap height in pixels.
	DefaultHeight = 600.0

	// DefaultRetries is the number of fetch attempts.
	DefaultRetries = 1

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Visualization types.
const (
	VizTypeTreemap  = "treemap"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeTreemap

// DefaultStyle is the default visual style.
const DefaultStyle = styles.DefaultName

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// ValidFormats maps each visualization type to the formats it can produce.
var ValidFormats = map[string][]string{
	VizTypeTreemap:  {FormatSVG, FormatHTML, FormatJSON, FormatPNG, FormatPDF},
	VizTypeNodelink: {FormatSVG, FormatDOT, FormatJSON, FormatPNG, FormatPDF},
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeTreemap:  true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Source  string        `json:"source,omitempty"` // URL or file path; empty means source.DefaultURL
	Delay   time.Duration `json:"delay,omitempty"`
	Retries int           `json:"retries,omitempty"`
	Refresh bool          `json:"refresh,omitempty"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Tiling string  `json:"tiling,omitempty"`
	Round  bool    `json:"round,omitempty"`

	// Render options
	VizType     string            `json:"viz_type,omitempty"`
	Formats     []string          `json:"formats,omitempty"`
	Style       string            `json:"style,omitempty"`
	Tooltips    bool              `json:"tooltips,omitempty"`
	NoLegend    bool              `json:"no_legend,omitempty"` // HTML only
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Scale       float64           `json:"scale,omitempty"`
	Palette     map[string]string `json:"palette,omitempty"` // category → colour overrides
	Detailed    bool              `json:"detailed,omitempty"` // nodelink labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution in logs and metrics.
	RunID string

	// Source is the URL or path the dataset was loaded from.
	Source string

	// Tree is the decoded dataset.
	Tree dataset.Node

	// DatasetHash is the SHA-256 of the raw payload.
	DatasetHash string

	// Layout is the computed treemap.
	Layout treemap.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LeafCount    int
	Categories   int
	PayloadBytes int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the dataset payload came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid for the visualization type.
func ValidateFormat(vizType, format string) error {
	if !slices.Contains(ValidFormats[vizType], format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q for %s (must be one of: %v)", format, vizType, ValidFormats[vizType])
	}
	return nil
}

// ValidateFormats checks that all formats are valid for the visualization type.
func ValidateFormats(vizType string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(vizType, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.Parse(style)
	return err
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz type %q (must be one of: treemap, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLoadDefaults sets default values for loading.
func (o *Options) SetLoadDefaults() {
	if o.Source == "" {
		o.Source = source.DefaultURL
	}
	if o.Retries == 0 {
		o.Retries = DefaultRetries
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForLoad validates and sets defaults for loading.
func (o *Options) ValidateForLoad() error {
	o.SetLoadDefaults()
	if o.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "retries must be positive, got %d", o.Retries)
	}
	if o.Delay < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "delay must not be negative, got %v", o.Delay)
	}
	if errors.IsURL(o.Source) {
		return errors.ValidateURL(o.Source)
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Tiling == "" {
		o.Tiling = string(treemap.Squarify)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := treemap.ParseTiling(o.Tiling); err != nil {
		return err
	}
	return errors.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	_, err := o.ColorTable()
	return err
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// ColorTable returns the default palette with o.Palette applied.
func (o *Options) ColorTable() (*palette.Table, error) {
	if len(o.Palette) == 0 {
		return palette.Default(), nil
	}
	return palette.Default().WithOverrides(o.Palette)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Tiling: o.Tiling,
		Round:  o.Round,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:  o.VizType,
		Format:   format,
		Style:    o.Style,
		Tooltips: o.Tooltips,
		Legend:   !o.NoLegend,
		Palette:  o.renderVariant(),
	}
}

// renderVariant fingerprints the remaining options that shape rendered bytes.
func (o *Options) renderVariant() string {
	if len(o.Palette) == 0 && o.Title == "" && o.Description == "" && o.Scale == DefaultScale && !o.Detailed {
		return ""
	}
	keys := slices.Sorted(maps.Keys(o.Palette))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+o.Palette[k])
	}
	data, _ := json.Marshal([]any{parts, o.Title, o.Description, o.Scale, o.Detailed})
	return cache.Hash(data)
}
