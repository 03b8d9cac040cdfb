package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/matzehuels/salesmap/pkg/dataset"
	"github.com/matzehuels/salesmap/pkg/palette"
)

func testTree(t *testing.T) dataset.Node {
	t.Helper()
	root, err := dataset.DecodeBytes([]byte(salesJSON))
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func press(m TileListModel, key tea.KeyMsg) TileListModel {
	next, _ := m.Update(key)
	return next.(TileListModel)
}

func TestTileListModelSorted(t *testing.T) {
	m := NewTileListModel(testTree(t), palette.Default())

	if len(m.Visible()) != 4 {
		t.Fatalf("visible = %d, want 4", len(m.Visible()))
	}
	want := []string{"Wii Sports", "Mario Kart Wii", "Grand Theft Auto V", "The Sims 3"}
	for i, r := range m.Visible() {
		if r.Name != want[i] {
			t.Errorf("visible[%d] = %q, want %q", i, r.Name, want[i])
		}
	}
}

func TestTileListModelNavigation(t *testing.T) {
	m := NewTileListModel(testTree(t), palette.Default())

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first row: %d", m.Cursor)
	}
	for range 10 {
		m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want clamped to 3", m.Cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(TileListModel)
	if m.Selected == nil || m.Selected.Name != "The Sims 3" {
		t.Errorf("Selected = %v, want The Sims 3", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestTileListModelFilter(t *testing.T) {
	m := NewTileListModel(testTree(t), palette.Default())

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Filter() != "Wii" {
		t.Fatalf("Filter() = %q, want Wii", m.Filter())
	}
	if len(m.Visible()) != 2 {
		t.Errorf("Wii titles = %d, want 2", len(m.Visible()))
	}
	if !strings.Contains(m.View(), "Platform Wii") {
		t.Error("view should name the active platform")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Filter() != "" || len(m.Visible()) != 4 {
		t.Errorf("shift+tab should return to all platforms, got %q with %d", m.Filter(), len(m.Visible()))
	}

	// Wrap around backwards to the last platform.
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Filter() != "PC" {
		t.Errorf("Filter() = %q, want PC", m.Filter())
	}
}

func TestTileListModelView(t *testing.T) {
	m := NewTileListModel(testTree(t), palette.Default())
	view := m.View()
	for _, s := range []string{"All platforms", "Wii Sports", "82.53", "[1/4]"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q", s)
		}
	}
}

func TestShare(t *testing.T) {
	if got := share(25, decimal.NewFromInt(200)); got != "12.5%" {
		t.Errorf("share = %q, want 12.5%%", got)
	}
	if got := share(1, decimal.Zero); got != "-" {
		t.Errorf("share with zero total = %q, want -", got)
	}
}

func TestRenderSummaryTable(t *testing.T) {
	out := renderSummaryTable(testTree(t), palette.Default())
	for _, s := range []string{"Wii", "#7e0209", "118.05", "Total", "147.05"} {
		if !strings.Contains(out, s) {
			t.Errorf("summary missing %q", s)
		}
	}
}

func TestRenderPaletteTable(t *testing.T) {
	out := renderPaletteTable(palette.Default(), map[string]string{"PC": "#000000"})
	for _, s := range []string{"3DS", "#5e0106", "2600", "override"} {
		if !strings.Contains(out, s) {
			t.Errorf("palette table missing %q", s)
		}
	}
}
