// Package nodelink renders the category hierarchy of a treemap layout as a
// node-link diagram.
//
// # Overview
//
// Where the treemap encodes value as area, this view shows structure: the
// root, one box per platform and one box per game, connected left to right.
// Game boxes are filled with their platform colour.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(layout, palette.Default(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
