package pipeline

import (
	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

// GenerateLayout computes the treemap for root with the layout options in
// opts. Both visualization types share this layout: nodelink only reads the
// hierarchy and aggregate values from it.
func GenerateLayout(root dataset.Node, opts Options) (treemap.Layout, error) {
	tiling, err := treemap.ParseTiling(opts.Tiling)
	if err != nil {
		return treemap.Layout{}, err
	}
	layoutOpts := []treemap.Option{treemap.WithTiling(tiling)}
	if opts.Round {
		layoutOpts = append(layoutOpts, treemap.WithRound())
	}
	return treemap.Compute(root, opts.Width, opts.Height, layoutOpts...)
}
