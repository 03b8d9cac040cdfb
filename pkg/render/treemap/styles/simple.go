package styles

import (
	"bytes"
	"fmt"
)

// Simple reproduces the reference look: coloured tiles with black outlines
// and white 12px labels.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n")
	buf.WriteString("    .tile:hover { opacity: 0.85; }\n")
	buf.WriteString("    .tile-text { pointer-events: none; font-family: sans-serif; }\n")
	buf.WriteString("    .legend-text { font-family: sans-serif; font-size: 12px; }\n")
	buf.WriteString("  </style>\n")
}

func (Simple) RenderTile(buf *bytes.Buffer, t Tile) {
	openCell(buf, t, ` stroke="black"`)
	writeLabel(buf, t.Name, ` fill="white" font-size="12px"`)
	buf.WriteString("  </g>\n")
}

func (Simple) RenderSwatch(buf *bytes.Buffer, s Swatch) {
	fmt.Fprintf(buf, `  <rect class="legend-item" x="%s" y="0" width="%s" height="%s" fill="%s" stroke="black"/>`+"\n",
		Num(s.X), Num(s.Size), Num(s.Size), EscapeXML(s.Fill))
	fmt.Fprintf(buf, `  <text class="legend-text" x="%s" y="%s" fill="black">%s</text>`+"\n",
		Num(s.X), Num(s.TextY), EscapeXML(s.Code))
}
