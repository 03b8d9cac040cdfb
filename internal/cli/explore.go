package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/palette"
)

// exploreCommand creates the explore command: an interactive browser over the
// dataset's tiles, or a per-platform summary with --summary.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		flags   stageFlags
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "explore [url|file]",
		Short: "Browse the titles of a sales dataset",
		Long: `Browse the titles of a sales dataset.

Opens an interactive list of every tile, largest first. Tab cycles through
the platforms. Use --summary for a non-interactive per-platform table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.optionsFromConfig()
			if len(args) == 1 {
				opts.Source = args[0]
			}
			flags.apply(cmd, &opts)

			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			root, err := c.loadWithSpinner(cmd.Context(), func(ctx context.Context) (dataset.Node, error) {
				return runner.Load(ctx, opts)
			})
			if err != nil {
				return err
			}

			colors, err := opts.ColorTable()
			if err != nil {
				return err
			}
			if summary {
				fmt.Fprintln(stdout, renderSummaryTable(root, colors))
				return nil
			}
			return runExplorer(cmd.Context(), root, colors)
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "print a per-platform summary instead of the browser")
	flags.addCacheFlags(cmd)
	flags.addLoadFlags(cmd)

	return cmd
}

func (c *CLI) loadWithSpinner(ctx context.Context, load func(context.Context) (dataset.Node, error)) (dataset.Node, error) {
	sp := newSpinner(ctx, "Loading dataset...")
	sp.Start()
	root, err := load(ctx)
	if err != nil {
		sp.Fail("Load failed")
		return nil, err
	}
	sp.Stop()
	return root, nil
}

// runExplorer runs the tile browser and prints the selected title, if any.
func runExplorer(ctx context.Context, root dataset.Node, p *palette.Table) error {
	model := NewTileListModel(root, p)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	m, ok := final.(TileListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	r := m.Selected
	printKeyValue("Title", r.Name)
	printKeyValue("Platform", r.Category)
	printKeyValue("Units (M)", dataset.FormatValue(r.Value))
	printKeyValue("Share", share(r.Value, m.Total))
	return nil
}

// renderSummaryTable lists each platform with its title count and total,
// in first-seen dataset order.
func renderSummaryTable(root dataset.Node, p *palette.Table) string {
	sums := dataset.Summarize(root)
	total := dataset.Total(root)

	rows := make([][]string, 0, len(sums)+1)
	for _, s := range sums {
		color, _ := p.Lookup(s.Category)
		if color == "" {
			color = "-"
		}
		rows = append(rows, []string{
			s.Category,
			color,
			fmt.Sprint(s.Count),
			s.Total.StringFixed(2),
			share(s.Total.InexactFloat64(), total),
		})
	}
	rows = append(rows, []string{"Total", "", fmt.Sprint(len(dataset.Leaves(root))), total.StringFixed(2), ""})

	last := len(rows) - 1
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleFaint).
		Headers("Platform", "Colour", "Titles", "Units (M)", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Bold(true).Foreground(colorAccent)
			case row == last:
				return base.Bold(true).Foreground(colorText)
			case col == 0:
				return base.Foreground(colorText)
			default:
				return base.Foreground(colorMuted)
			}
		})
	return t.Render()
}
