package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/pipeline"
)

// renderCommand creates the render command: the full load → layout → render
// pipeline in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  stageFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [url|file]",
		Short: "Fetch a sales dataset and render it as a treemap",
		Long: `Fetch a sales dataset and render it as a treemap.

The source is an http(s) URL or a local JSON file. Without an argument the
source from the config file is used, which defaults to the public video game
sales dataset.

Every tile is coloured by its platform, labelled with the game name and
carries a hover tooltip. HTML output adds a legend of all platforms.

Datasets, layouts and rendered outputs are cached locally; use --refresh to
fetch the dataset again or --no-cache to bypass the cache entirely.`,
		Example: `  salesmap render
  salesmap render -f svg,html -o out/sales
  salesmap render sales.json --tiling binary --style flat
  salesmap render -t nodelink -f svg,dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.optionsFromConfig()
			if len(args) == 1 {
				opts.Source = args[0]
			}
			flags.apply(cmd, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if err := checkOutput(output, opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.addCacheFlags(cmd)
	flags.addLoadFlags(cmd)
	flags.addLayoutFlags(cmd)
	flags.addRenderFlags(cmd)

	return cmd
}

// runRender runs the three stages with a spinner and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	sp := newSpinner(ctx, "Loading dataset...")
	sp.Start()

	src, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		sp.Fail("Load failed")
		return err
	}
	prog.lap("load")

	sp.SetMessage("Computing layout...")
	l, layoutHit, err := runner.ComputeLayoutWithCacheInfo(ctx, src.Root, src.Hash, opts)
	if err != nil {
		sp.Fail("Layout failed")
		return err
	}
	prog.lap("layout")

	sp.SetMessage(fmt.Sprintf("Rendering %s...", opts.VizType))
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		sp.Fail("Render failed")
		return err
	}
	sp.Stop()
	prog.lap("render")

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		source:    src.Source,
		output:    output,
	})
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	prog.lap("write")
	prog.done(fmt.Sprintf("Rendered %s", src.Source))
	if output == "-" {
		return nil
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(dataset.Leaves(src.Root)), len(dataset.Summarize(src.Root)), src.FromCache && layoutHit && renderHit)
	return nil
}
