// Package pkg provides the core libraries for salesmap sales treemaps.
//
// # Overview
//
// Salesmap turns a hierarchical sales dataset (platform → game → units sold)
// into a treemap: every game becomes a rectangle whose area is proportional
// to its sales, coloured by platform, with a legend and hover tooltips. The
// pkg directory is organized into four main areas:
//
//  1. Domain: [dataset], [palette] and [treemap]
//  2. Rendering: [render] with [render/treemap/sink], [render/treemap/styles]
//     and [render/nodelink]
//  3. Loading and caching: [source], [cache], [httputil]
//  4. Orchestration and support: [pipeline], [config], [observability], [errors]
//
// # Architecture
//
// The data flow is strictly sequential:
//
//	URL or JSON file
//	       ↓
//	  [source] (fetch once, decode into a [dataset] tree)
//	       ↓
//	  [treemap] (aggregate values, order siblings, tile the canvas)
//	       ↓
//	  [render/treemap/sink] (SVG cells, legend, tooltip, HTML page)
//	       ↓
//	  SVG/HTML/JSON/PNG/PDF output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/salesmap/pkg/source"
//	    "github.com/matzehuels/salesmap/pkg/treemap"
//	    "github.com/matzehuels/salesmap/pkg/render/treemap/sink"
//	)
//
//	// 1. Load the dataset
//	res, _ := source.NewLoader(nil, nil).Load(context.Background(), source.DefaultURL)
//
//	// 2. Compute the layout
//	l, _ := treemap.Compute(res.Root, 1080, 600)
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(l, sink.WithTooltips())
//
// Most callers use [pipeline.Runner] instead, which adds caching, defaults
// and validation around the same three stages.
//
// # Main Packages
//
// [dataset] - The sales tree: CategoryGroup nodes and SalesRecord leaves,
// decoded from JSON with numeric or string values.
//
// [palette] - The fixed, ordered platform → colour table shared by tiles and
// legend.
//
// [treemap] - Layout engine. Squarify by default; slice, dice, slice-dice and
// binary tilings are selectable.
//
// [render/treemap/sink] - Output formats (SVG, legend SVG, HTML, JSON, PNG, PDF).
//
// [render/treemap/styles] - Visual styles (simple, flat) and label splitting.
//
// [render/nodelink] - The category hierarchy as a Graphviz tree.
//
// [cache] - File, Redis and null backends keyed by content hashes.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/treemap/...    # Specific package
//	go test -run Example ./...   # Examples only
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/dataset
// [palette]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/palette
// [treemap]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/treemap
// [render]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/render
// [render/treemap/sink]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/render/treemap/sink
// [render/treemap/styles]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/render/treemap/styles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/render/nodelink
// [source]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/httputil
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/pipeline#Runner
// [config]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/salesmap/pkg/errors
package pkg
