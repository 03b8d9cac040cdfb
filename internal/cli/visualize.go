package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/salesmap/pkg/pipeline"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		flags  stageFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a treemap from a computed layout",
		Long: `Render a treemap from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, HTML, JSON, PNG or PDF. The layout contains all
positioning information, so this step is purely about drawing.

Use 'render' as a shortcut to go directly from a dataset to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.optionsFromConfig()
			flags.apply(cmd, &opts)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			if err := checkOutput(output, opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.addCacheFlags(cmd)
	flags.addRenderFlags(cmd)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := treemap.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sp := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	sp.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		sp.Fail("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	sp.Stop()

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		source:    trimLayoutExt(input),
		output:    output,
	})
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if output == "-" {
		return nil
	}

	printSuccess("Visualization complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(l.Leaves()), 0, cacheHit)
	return nil
}
