package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/shopspring/decimal"

	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/palette"
	"github.com/matzehuels/salesmap/pkg/render"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the aggregate value (and category for leaves) to labels.
	// When false, only the name is shown.
	Detailed bool
}

// ToDOT converts the cell hierarchy of l to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Groups are drawn as white boxes. Leaves are filled with their category's
// colour from p; a leaf whose category is not in p keeps the white fill.
// A nil palette means [palette.Default].
func ToDOT(l treemap.Layout, p *palette.Table, opts Options) string {
	if p == nil {
		p = palette.Default()
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.1;\n")
	buf.WriteString("\n")

	if l.Root == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	// Names repeat across platforms, so nodes are keyed by visit order.
	ids := make(map[*treemap.Cell]string)
	var edges []string
	l.Walk(func(c *treemap.Cell) {
		id := "n" + strconv.Itoa(len(ids))
		ids[c] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(c, p, opts.Detailed), ", "))
	})
	l.Walk(func(c *treemap.Cell) {
		for _, ch := range c.Children {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", ids[c], ids[ch]))
		}
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c *treemap.Cell, detailed bool) string {
	if !detailed {
		return c.Name
	}
	if c.Leaf {
		return fmt.Sprintf("%s\n%s: %s", c.Name, c.Category, dataset.FormatValue(c.Value))
	}
	// Group sums carry float noise from the additions.
	return fmt.Sprintf("%s\ntotal: %s", c.Name, decimal.NewFromFloat(c.Value).Round(2).String())
}

func fmtAttrs(c *treemap.Cell, p *palette.Table, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, detailed))}
	if !c.Leaf {
		if c.Depth == 0 {
			attrs = append(attrs, "penwidth=2")
		}
		return attrs
	}
	if fill, ok := p.Lookup(c.Category); ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill), "fontcolor=white")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// width and height match the viewBox, so the output scales like the treemap.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f" class="nodelink">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
