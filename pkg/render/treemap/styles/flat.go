package styles

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Flat draws borderless tiles with rounded corners separated by a thin
// white gap. Label colour follows the tile's luminance.
type Flat struct{}

const flatRadius = 3

func (Flat) Name() string { return "flat" }

func (Flat) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n")
	buf.WriteString("    .tile { transition: opacity 0.15s ease; }\n")
	buf.WriteString("    .tile:hover { opacity: 0.8; }\n")
	buf.WriteString("    .tile-text { pointer-events: none; font-family: Helvetica, Arial, sans-serif; }\n")
	buf.WriteString("    .legend-text { font-family: Helvetica, Arial, sans-serif; font-size: 11px; }\n")
	buf.WriteString("  </style>\n")
}

func (Flat) RenderTile(buf *bytes.Buffer, t Tile) {
	openCell(buf, t, fmt.Sprintf(` rx="%d" ry="%d" stroke="white" stroke-width="1"`, flatRadius, flatRadius))
	writeLabel(buf, t.Name, fmt.Sprintf(` fill="%s" font-size="11px"`, LabelColor(t.Fill)))
	buf.WriteString("  </g>\n")
}

func (Flat) RenderSwatch(buf *bytes.Buffer, s Swatch) {
	fmt.Fprintf(buf, `  <rect class="legend-item" x="%s" y="0" width="%s" height="%s" rx="%d" ry="%d" fill="%s"/>`+"\n",
		Num(s.X), Num(s.Size), Num(s.Size), flatRadius, flatRadius, EscapeXML(s.Fill))
	fmt.Fprintf(buf, `  <text class="legend-text" x="%s" y="%s" fill="#333">%s</text>`+"\n",
		Num(s.X), Num(s.TextY), EscapeXML(s.Code))
}

// LabelColor returns "black" for light fills and "white" for dark ones.
// Missing or unparsable colours get black text.
func LabelColor(fill string) string {
	r, g, b, ok := parseHex(fill)
	if !ok {
		return "black"
	}
	// Rec. 601 luma
	if 0.299*r+0.587*g+0.114*b > 150 {
		return "black"
	}
	return "white"
}

func parseHex(s string) (r, g, b float64, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return float64(v >> 16 & 0xff), float64(v >> 8 & 0xff), float64(v & 0xff), true
}
