package pipeline

import (
	"fmt"

	"github.com/matzehuels/salesmap/pkg/palette"
	"github.com/matzehuels/salesmap/pkg/render/nodelink"
	"github.com/matzehuels/salesmap/pkg/render/treemap/sink"
	"github.com/matzehuels/salesmap/pkg/render/treemap/styles"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

// Render generates output artifacts in the requested formats. Either every
// format renders or an error is returned and no artifacts are produced.
func Render(l treemap.Layout, opts Options) (map[string][]byte, error) {
	if l.Root == nil {
		return nil, fmt.Errorf("layout has no root")
	}
	table, err := opts.ColorTable()
	if err != nil {
		return nil, err
	}
	if opts.IsNodelink() {
		return renderNodelink(l, table, opts)
	}
	return renderTreemap(l, table, opts)
}

// renderTreemap generates treemap outputs.
func renderTreemap(l treemap.Layout, table *palette.Table, opts Options) (map[string][]byte, error) {
	style, err := styles.Parse(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := buildSVGOptions(style, table, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatHTML:
			data = sink.RenderHTML(l, buildHTMLOptions(style, table, opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, table, style.Name())
		case FormatPNG:
			data, err = sink.RenderPNG(l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
		default:
			return nil, fmt.Errorf("unsupported treemap format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(style styles.Style, table *palette.Table, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(style), sink.WithPalette(table)}
	if opts.Tooltips {
		svgOpts = append(svgOpts, sink.WithTooltips())
	}
	return svgOpts
}

func buildHTMLOptions(style styles.Style, table *palette.Table, opts Options) []sink.HTMLOption {
	htmlOpts := []sink.HTMLOption{sink.WithHTMLStyle(style), sink.WithHTMLPalette(table)}
	if opts.Title != "" {
		htmlOpts = append(htmlOpts, sink.WithTitle(opts.Title))
	}
	if opts.Description != "" {
		htmlOpts = append(htmlOpts, sink.WithDescription(opts.Description))
	}
	if opts.NoLegend {
		htmlOpts = append(htmlOpts, sink.WithoutLegend())
	}
	if !opts.Tooltips {
		htmlOpts = append(htmlOpts, sink.WithoutTooltips())
	}
	return htmlOpts
}

// renderNodelink generates nodelink outputs from the layout's hierarchy.
func renderNodelink(l treemap.Layout, table *palette.Table, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(l, table, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatJSON:
			data, err = treemap.Marshal(l)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
