// Package styles defines how treemap tiles and legend swatches are drawn.
//
// A [Style] only controls appearance. Geometry, data attributes and the
// label line positions are fixed so that every style produces markup with
// the same structure:
//
//	<g class="cell" transform="translate(x0, y0)">
//	  <rect class="tile" width=".." height=".." data-name=".." data-category=".." data-value=".."/>
//	  <text class="tile-text"><tspan x="4" y="13">..</tspan>...</text>
//	</g>
//
// Two styles are provided: [Simple] (black outlines, white 12px labels) and
// [Flat] (no outlines, rounded corners, labels coloured for contrast).
package styles

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/salesmap/pkg/errors"
)

// Style defines the visual appearance of a treemap.
type Style interface {
	// Name identifies the style on the command line.
	Name() string
	// RenderDefs writes SVG <defs> and <style> content shared by all tiles.
	RenderDefs(buf *bytes.Buffer)
	// RenderTile writes one leaf cell.
	RenderTile(buf *bytes.Buffer, t Tile)
	// RenderSwatch writes one legend entry.
	RenderSwatch(buf *bytes.Buffer, s Swatch)
}

// Tile contains everything needed to draw one leaf.
type Tile struct {
	Name     string
	Category string
	Value    string  // value as it appears in the dataset
	X, Y     float64 // top-left corner
	W, H     float64
	Fill     string // empty when the category has no colour
}

// Swatch is one legend entry.
type Swatch struct {
	Code  string
	Fill  string
	X     float64
	Size  float64 // side of the square
	TextY float64 // baseline of the label
}

const (
	// DefaultName is the style used when none is requested.
	DefaultName = "simple"
)

// Names lists the available styles.
var Names = []string{"simple", "flat"}

// Parse returns the style with the given name. The empty string selects
// [Simple].
func Parse(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "", "simple":
		return Simple{}, nil
	case "flat":
		return Flat{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (valid: %s)", name, strings.Join(Names, ", "))
}

// openCell writes the cell group, the tile rect and its data attributes.
// extra is appended verbatim inside the rect tag.
func openCell(buf *bytes.Buffer, t Tile, extra string) {
	fmt.Fprintf(buf, `  <g class="cell" transform="translate(%s, %s)">`+"\n", Num(t.X), Num(t.Y))
	fmt.Fprintf(buf, `    <rect class="tile" width="%s" height="%s" data-name="%s" data-category="%s" data-value="%s"`,
		Num(t.W), Num(t.H), EscapeXML(t.Name), EscapeXML(t.Category), EscapeXML(t.Value))
	if t.Fill != "" {
		fmt.Fprintf(buf, ` fill="%s"`, EscapeXML(t.Fill))
	}
	buf.WriteString(extra)
	buf.WriteString("/>\n")
}

// writeLabel writes the split label as tspans at the fixed line positions.
func writeLabel(buf *bytes.Buffer, name, attrs string) {
	lines := SplitLabel(name)
	if len(lines) == 0 {
		return
	}
	buf.WriteString(`    <text class="tile-text">`)
	for i, line := range lines {
		x, y := LabelLine(i)
		fmt.Fprintf(buf, `<tspan x="%s" y="%s"%s>%s</tspan>`, Num(x), Num(y), attrs, EscapeXML(line))
	}
	buf.WriteString("</text>\n")
}
