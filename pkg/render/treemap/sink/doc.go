// Package sink provides output format renderers for treemap layouts.
//
// # Overview
//
// A "sink" transforms a computed [treemap.Layout] into a final output format:
//
//   - SVG: the treemap, optionally with an embedded hover tooltip
//   - Legend: an SVG strip with one swatch per palette entry
//   - HTML: a standalone page hosting the treemap (#container), the legend
//     (#legend) and a shared tooltip (#tooltip)
//   - JSON: flat tile export for external tools
//   - PDF/PNG: via rsvg-convert
//
// # SVG Output
//
// [RenderSVG] emits one cell group per leaf, in depth-first order:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithStyle(styles.Flat{}),
//	    sink.WithPalette(table),
//	    sink.WithTooltips(),
//	)
//
// Tiles whose category is missing from the palette are drawn without a fill
// attribute; this never fails the render.
//
// The output is written once. There is no update path: re-rendering means
// producing a new document.
//
// [treemap.Layout]: github.com/matzehuels/salesmap/pkg/treemap.Layout
package sink
