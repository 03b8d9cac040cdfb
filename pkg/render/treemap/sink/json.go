package sink

import (
	"encoding/json"

	"github.com/matzehuels/salesmap/pkg/palette"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

type jsonOutput struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Tiling string       `json:"tiling"`
	Style  string       `json:"style,omitempty"`
	Tiles  []jsonTile   `json:"tiles"`
	Legend []jsonLegend `json:"legend"`
}

type jsonTile struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	X0       float64 `json:"x0"`
	Y0       float64 `json:"y0"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	Fill     string  `json:"fill,omitempty"`
}

type jsonLegend struct {
	Code  string `json:"code"`
	Color string `json:"color"`
}

// RenderJSON exports the leaves of l as a flat list of coloured rectangles,
// followed by the legend entries in palette order. A nil palette means the
// default table.
func RenderJSON(l treemap.Layout, p *palette.Table, style string) ([]byte, error) {
	if p == nil {
		p = palette.Default()
	}
	out := jsonOutput{
		Width:  l.Width,
		Height: l.Height,
		Tiling: string(l.Tiling),
		Style:  style,
		Tiles:  []jsonTile{},
	}
	for _, c := range l.Leaves() {
		fill, _ := p.Lookup(c.Category)
		out.Tiles = append(out.Tiles, jsonTile{
			Name: c.Name, Category: c.Category, Value: c.Value,
			X0: c.X0, Y0: c.Y0, X1: c.X1, Y1: c.Y1,
			Fill: fill,
		})
	}
	for _, e := range p.Entries() {
		out.Legend = append(out.Legend, jsonLegend{Code: e.Code, Color: e.Color})
	}
	return json.MarshalIndent(out, "", "  ")
}
