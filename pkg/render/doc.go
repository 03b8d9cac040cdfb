// Package render turns computed treemap layouts into files.
//
// # Overview
//
//   - Generic format conversion (SVG to PDF/PNG), see [ToPDF] and [ToPNG]
//   - Treemap output (in [treemap/sink]) with visual styles in [treemap/styles]
//   - Hierarchy diagrams (in [nodelink])
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Both the treemap and nodelink renderers use them.
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [treemap/sink]: github.com/matzehuels/salesmap/pkg/render/treemap/sink
// [treemap/styles]: github.com/matzehuels/salesmap/pkg/render/treemap/styles
// [nodelink]: github.com/matzehuels/salesmap/pkg/render/nodelink
package render
