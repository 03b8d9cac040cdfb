package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/palette"
	"github.com/matzehuels/salesmap/pkg/render/treemap/styles"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style    styles.Style
	palette  *palette.Table
	tooltips bool
}

func WithStyle(s styles.Style) SVGOption     { return func(r *svgRenderer) { r.style = s } }
func WithPalette(p *palette.Table) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithTooltips embeds the shared #tooltip element and its hover script.
func WithTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, palette: palette.Default()}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	if r.palette == nil {
		r.palette = palette.Default()
	}
	return r
}

// RenderSVG renders the leaves of l as an SVG treemap.
func RenderSVG(l treemap.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" class="treemap">`+"\n",
		styles.Num(l.Width), styles.Num(l.Height), styles.Num(l.Width), styles.Num(l.Height))

	r.style.RenderDefs(&buf)
	for _, t := range buildTiles(l, r.palette) {
		r.style.RenderTile(&buf, t)
	}

	if r.tooltips {
		renderSVGTooltip(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildTiles(l treemap.Layout, p *palette.Table) []styles.Tile {
	leaves := l.Leaves()
	tiles := make([]styles.Tile, 0, len(leaves))
	for _, c := range leaves {
		fill, _ := p.Lookup(c.Category)
		tiles = append(tiles, styles.Tile{
			Name:     c.Name,
			Category: c.Category,
			Value:    dataset.FormatValue(c.Value),
			X:        c.X0, Y: c.Y0,
			W: c.Width(), H: c.Rect.Height(),
			Fill: fill,
		})
	}
	return tiles
}

func withoutTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = false } }
