package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/salesmap/pkg/palette"
	"github.com/matzehuels/salesmap/pkg/render/treemap/sink"
	"github.com/matzehuels/salesmap/pkg/render/treemap/styles"
)

// legendCommand creates the legend command, which shows the platform colour
// table and optionally writes the legend SVG.
func (c *CLI) legendCommand() *cobra.Command {
	var output, style string

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Show the platform colour table",
		Long: `Show the platform colour table.

Prints every platform code with its colour, in legend order, including any
overrides from the [palette] section of the config file. With -o the legend
is written as a standalone SVG (960×50, one swatch per platform).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := c.Config.ColorTable()
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Fprintln(stdout, renderPaletteTable(colors, c.Config.Palette))
				return nil
			}

			s, err := styles.Parse(style)
			if err != nil {
				return err
			}
			data := sink.RenderLegend(sink.WithLegendPalette(colors), sink.WithLegendStyle(s))
			if err := writeFile(output, data); err != nil {
				return fmt.Errorf("write legend: %w", err)
			}
			if output != "-" {
				printSuccess("Legend written")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the legend SVG to this file")
	cmd.Flags().StringVar(&style, "style", styles.DefaultName, "visual style: simple (default), flat")

	return cmd
}

// renderPaletteTable formats the colour table with a swatch column.
// Codes present in overrides are marked.
func renderPaletteTable(t *palette.Table, overrides map[string]string) string {
	rows := make([][]string, 0, t.Len())
	for i, e := range t.Entries() {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(e.Color)).Render("    ")
		note := ""
		if _, ok := overrides[e.Code]; ok {
			note = "override"
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), e.Code, e.Color, swatch, note})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleFaint).
		Headers("#", "PLATFORM", "COLOUR", "", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true).Foreground(colorAccent)
			}
			switch col {
			case 1:
				return base.Foreground(colorText)
			case 4:
				return base.Foreground(colorWarn)
			default:
				return base.Foreground(colorMuted)
			}
		})

	return styleTitle.Render("Platforms") + "\n" + tbl.Render()
}
