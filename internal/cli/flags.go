package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/salesmap/pkg/pipeline"
)

// stageFlags holds command-line overrides for pipeline options. Config file
// values are the baseline; a flag only wins when it was set explicitly.
type stageFlags struct {
	delayMS  int
	retries  int
	refresh  bool
	noCache  bool
	width    float64
	height   float64
	tiling   string
	round    bool
	vizType  string
	formats  string
	style    string
	tooltips bool
	noLegend bool
	title    string
	desc     string
	scale    float64
	detailed bool
}

func (f *stageFlags) addLoadFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.delayMS, "delay", 0, "milliseconds to wait before fetching (the reference page waits 300)")
	fs.IntVar(&f.retries, "retries", pipeline.DefaultRetries, "fetch attempts for transient failures")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore the cached dataset and fetch again")
}

func (f *stageFlags) addLayoutFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "treemap width")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "treemap height")
	fs.StringVar(&f.tiling, "tiling", "squarify", "tiling: squarify (default), slice, dice, slice-dice, binary")
	fs.BoolVar(&f.round, "round", false, "snap tile edges to whole pixels")
}

func (f *stageFlags) addRenderFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: treemap (default), nodelink")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), html, json, png, pdf, dot (comma-separated)")
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple (default), flat")
	fs.BoolVar(&f.tooltips, "tooltips", true, "attach hover tooltips")
	fs.BoolVar(&f.noLegend, "no-legend", false, "omit the legend from HTML output")
	fs.StringVar(&f.title, "title", "", "HTML page title")
	fs.StringVar(&f.desc, "description", "", "HTML page description")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	fs.BoolVar(&f.detailed, "detailed", false, "show values in nodelink labels")
}

func (f *stageFlags) addCacheFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// apply copies explicitly set flags onto opts.
func (f *stageFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := cmd.Flags().Changed

	if set("delay") {
		opts.Delay = time.Duration(f.delayMS) * time.Millisecond
	}
	if set("retries") {
		opts.Retries = f.retries
	}
	opts.Refresh = f.refresh

	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("tiling") {
		opts.Tiling = f.tiling
	}
	if set("round") {
		opts.Round = f.round
	}

	if set("type") {
		opts.VizType = f.vizType
	}
	if set("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if set("style") {
		opts.Style = f.style
	}
	if set("tooltips") {
		opts.Tooltips = f.tooltips
	}
	opts.NoLegend = f.noLegend
	if set("title") {
		opts.Title = f.title
	}
	if set("description") {
		opts.Description = f.desc
	}
	if set("scale") {
		opts.Scale = f.scale
	}
	opts.Detailed = f.detailed
}
