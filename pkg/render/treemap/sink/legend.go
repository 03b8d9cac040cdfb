package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/salesmap/pkg/palette"
	"github.com/matzehuels/salesmap/pkg/render/treemap/styles"
)

// Legend geometry.
const (
	LegendWidth   = 960.0
	LegendHeight  = 50.0
	LegendPadding = 20.0
	SwatchSize    = 20.0
	LegendTextY   = 40.0
)

// LegendOption configures [RenderLegend].
type LegendOption func(*legendRenderer)

type legendRenderer struct {
	style   styles.Style
	palette *palette.Table
}

func WithLegendStyle(s styles.Style) LegendOption {
	return func(r *legendRenderer) { r.style = s }
}

func WithLegendPalette(p *palette.Table) LegendOption {
	return func(r *legendRenderer) { r.palette = p }
}

// Swatches positions one swatch per palette entry, in table order. The
// strip maps index i to padding + i*(width-2*padding)/n.
func Swatches(p *palette.Table) []styles.Swatch {
	entries := p.Entries()
	if len(entries) == 0 {
		return nil
	}
	step := (LegendWidth - 2*LegendPadding) / float64(len(entries))
	out := make([]styles.Swatch, len(entries))
	for i, e := range entries {
		out[i] = styles.Swatch{
			Code:  e.Code,
			Fill:  e.Color,
			X:     LegendPadding + float64(i)*step,
			Size:  SwatchSize,
			TextY: LegendTextY,
		}
	}
	return out
}

// RenderLegend renders the colour legend as a standalone SVG.
func RenderLegend(opts ...LegendOption) []byte {
	r := legendRenderer{style: styles.Simple{}, palette: palette.Default()}
	for _, opt := range opts {
		opt(&r)
	}
	if r.palette == nil {
		r.palette = palette.Default()
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" class="legend">`+"\n",
		styles.Num(LegendWidth), styles.Num(LegendHeight))
	for _, s := range Swatches(r.palette) {
		r.style.RenderSwatch(&buf, s)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
