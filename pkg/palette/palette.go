// Package palette holds the fixed platform colour table used to fill treemap
// tiles and draw the legend.
//
// The table is ordered: legend swatches are laid out in table order, so
// [Table.Entries] and [Table.Codes] always return entries in that order.
// Tables are immutable values. [Default] returns the process-wide table;
// [Table.WithOverrides] derives a new table and leaves the receiver intact.
package palette

import (
	"sync"

	"github.com/matzehuels/salesmap/pkg/errors"
)

// Entry pairs a platform code with its fill colour.
type Entry struct {
	Code  string `json:"code"`
	Color string `json:"color"`
}

// Table is an ordered, read-only mapping from platform code to hex colour.
type Table struct {
	entries []Entry
	index   map[string]int
}

// defaultEntries is the platform table, Nintendo first, then Sony,
// Microsoft, PC and Atari.
var defaultEntries = []Entry{
	{"3DS", "#5e0106"},
	{"Wii", "#7e0209"},
	{"DS", "#bd030c"},
	{"N64", "#be6166"},
	{"GBA", "#be9093"},
	{"SNES", "#FC0411"},
	{"GB", "#fe8289"},
	{"NES", "#fec0c4"},
	{"PS4", "#07002e"},
	{"PS3", "#67608e"},
	{"PSP", "#8a80be"},
	{"PS2", "#13007C"},
	{"PS", "#c4bfde"},
	{"XOne", "#436635"},
	{"X360", "#87CC69"},
	{"XB", "#aadd9f"},
	{"PC", "#c2c2c2"},
	{"2600", "#777777"},
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// Default returns the shared platform table. It is built on first use and
// never modified.
func Default() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = newTable(defaultEntries)
	})
	return defaultTable
}

func newTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)
	for i, e := range t.entries {
		t.index[e.Code] = i
	}
	return t
}

// Len returns the number of categories in the table.
func (t *Table) Len() int { return len(t.entries) }

// Lookup returns the colour for code. A miss returns ("", false); callers
// render such tiles without a fill rather than failing.
func (t *Table) Lookup(code string) (string, bool) {
	i, ok := t.index[code]
	if !ok {
		return "", false
	}
	return t.entries[i].Color, true
}

// Has reports whether code is a known category.
func (t *Table) Has(code string) bool {
	_, ok := t.index[code]
	return ok
}

// Entries returns a copy of the table in iteration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Codes returns the category codes in iteration order.
func (t *Table) Codes() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Code
	}
	return out
}

// WithOverrides returns a new table whose colours are replaced for the codes
// in overrides. Only existing codes may be overridden, so the category set and
// its order never change.
func (t *Table) WithOverrides(overrides map[string]string) (*Table, error) {
	if len(overrides) == 0 {
		return t, nil
	}
	entries := t.Entries()
	for code, color := range overrides {
		i, ok := t.index[code]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "unknown category %q", code)
		}
		if err := errors.ValidateHexColor(color); err != nil {
			return nil, err
		}
		entries[i].Color = color
	}
	return newTable(entries), nil
}
