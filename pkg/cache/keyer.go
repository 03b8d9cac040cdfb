package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// DatasetKey identifies the raw bytes fetched from a URL or file path.
	DatasetKey(source string) string

	// LayoutKey identifies a layout computed from a dataset with the given hash.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact for a layout with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the layout options that change the computed rectangles.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Tiling string  `json:"tiling"`
	Round  bool    `json:"round"`
}

// ArtifactKeyOpts holds the render options that change the output bytes.
type ArtifactKeyOpts struct {
	VizType  string `json:"viz_type"`
	Format   string `json:"format"`
	Style    string `json:"style"`
	Tooltips bool   `json:"tooltips"`
	Legend   bool   `json:"legend"`
	Palette  string `json:"palette,omitempty"`
}

// Hash returns the hex SHA-256 of data. Dataset and layout hashes use it
// so identical payloads share cache entries regardless of where they came
// from.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digest hashes the JSON encoding of each part in order and returns
// "kind:<hex>". Struct fields encode in declaration order, so equal option
// values always yield equal keys.
func digest(kind string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey keeps the source readable so entries can be inspected by hand.
func (DefaultKeyer) DatasetKey(source string) string {
	return "dataset:" + strings.TrimSpace(source)
}

func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return digest("layout", datasetHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return digest("artifact", layoutHash, opts)
}

// scopedKeyer namespaces another Keyer.
type scopedKeyer struct {
	Keyer
	prefix string
}

// NewScopedKeyer prepends prefix to every key from inner (the default keyer
// when nil). The CLI uses it for the [cache] prefix setting so several
// setups can share one Redis database.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix == "" {
		return inner
	}
	return scopedKeyer{Keyer: inner, prefix: prefix}
}

func (k scopedKeyer) DatasetKey(source string) string {
	return k.prefix + k.Keyer.DatasetKey(source)
}

func (k scopedKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.Keyer.LayoutKey(datasetHash, opts)
}

func (k scopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.Keyer.ArtifactKey(layoutHash, opts)
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = scopedKeyer{}
)
