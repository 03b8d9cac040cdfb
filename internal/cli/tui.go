package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/palette"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// =============================================================================
// TileListModel - Interactive tile browser
// =============================================================================

// TileListModel is the bubbletea model for browsing the leaves of a dataset,
// largest first. Tab cycles a platform filter.
type TileListModel struct {
	Records  []*dataset.SalesRecord
	Palette  *palette.Table
	Total    decimal.Decimal
	Cursor   int
	Offset   int
	Height   int
	Selected *dataset.SalesRecord

	filters []string // "" followed by the platforms present
	filter  int
	visible []*dataset.SalesRecord
}

// NewTileListModel creates a tile browser over the leaves of root.
func NewTileListModel(root dataset.Node, p *palette.Table) TileListModel {
	records := dataset.Leaves(root)
	slices.SortStableFunc(records, func(a, b *dataset.SalesRecord) int {
		return cmp.Compare(b.Value, a.Value)
	})

	filters := append([]string{""}, dataset.Categories(root)...)

	m := TileListModel{
		Records: records,
		Palette: p,
		Total:   dataset.Total(root),
		Height:  15,
		filters: filters,
	}
	m.applyFilter()
	return m
}

// Filter returns the active platform filter, or "" for all platforms.
func (m TileListModel) Filter() string {
	return m.filters[m.filter]
}

// Visible returns the records that pass the current filter.
func (m TileListModel) Visible() []*dataset.SalesRecord {
	return m.visible
}

func (m *TileListModel) applyFilter() {
	f := m.Filter()
	m.visible = nil
	for _, r := range m.Records {
		if f == "" || r.Category == f {
			m.visible = append(m.visible, r)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m TileListModel) Init() tea.Cmd {
	return nil
}

func (m TileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			m.filter = (m.filter + 1) % len(m.filters)
			m.applyFilter()
		case "shift+tab":
			m.filter = (m.filter + len(m.filters) - 1) % len(m.filters)
			m.applyFilter()
		case "enter":
			if len(m.visible) == 0 {
				return m, nil
			}
			m.Selected = m.visible[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TileListModel) View() string {
	var b strings.Builder

	title := "All platforms"
	if f := m.Filter(); f != "" {
		title = "Platform " + f
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⇥ platform  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(i + 1),
			r.Name,
			m.swatch(r.Category) + " " + r.Category,
			dataset.FormatValue(r.Value),
			share(r.Value, m.Total),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "#", "Title", "Platform", "Units (M)", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 1 || col == 5 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.visible)), len(m.visible))))

	return b.String()
}

// swatch renders a small block in the platform colour, blank if unknown.
func (m TileListModel) swatch(category string) string {
	if m.Palette == nil {
		return " "
	}
	color, ok := m.Palette.Lookup(category)
	if !ok {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

// share formats v as a percentage of total with one decimal place.
func share(v float64, total decimal.Decimal) string {
	if total.IsZero() {
		return "-"
	}
	pct := decimal.NewFromFloat(v).Div(total).Mul(decimal.NewFromInt(100))
	return pct.StringFixed(1) + "%"
}
