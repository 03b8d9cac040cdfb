package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/salesmap/pkg/pipeline"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

// layoutCommand creates the layout command for computing a treemap layout
// without rendering it.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  stageFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [url|file]",
		Short: "Compute the treemap layout of a sales dataset",
		Long: `Compute the treemap layout of a sales dataset.

The output is a layout.json file holding every tile rectangle. It can be
rendered to SVG, HTML, PNG or PDF with the 'visualize' command, which skips
fetching and layout entirely.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.optionsFromConfig()
			if len(args) == 1 {
				opts.Source = args[0]
			}
			flags.apply(cmd, &opts)
			if err := opts.ValidateForLoad(); err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <source>.layout.json)")
	flags.addCacheFlags(cmd)
	flags.addLoadFlags(cmd)
	flags.addLayoutFlags(cmd)

	return cmd
}

// runLayout loads the dataset, computes the layout, and writes layout.json.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sp := newSpinner(ctx, "Loading dataset...")
	sp.Start()

	src, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		sp.Fail("Load failed")
		return err
	}

	sp.SetMessage(fmt.Sprintf("Computing %s layout...", opts.Tiling))
	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, src.Root, src.Hash, opts)
	if err != nil {
		sp.Fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	sp.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", src.Source) + ".layout.json"
	}
	if err := treemap.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	loggerFromContext(ctx).Debug("wrote layout", "path", outputPath, "tiling", l.Tiling, "rounded", l.Rounded)

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Leaves()), 0, src.FromCache && cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
