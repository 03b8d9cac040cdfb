package styles

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/salesmap/pkg/errors"
)

func TestSplitLabel(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"GrandTheftAutoV", []string{"Grand", "Theft", "Auto", "V"}},
		{"GTAV", []string{"GTA", "V"}},
		{"Wii Sports", []string{"Wii ", "Sports"}},
		{"Tetris", []string{"Tetris"}},
		{"tetris", []string{"tetris"}},
		{"A", []string{"A"}},
		{"SuperMarioBros.", []string{"Super", "Mario", "Bros."}},
		{"Pokemon Red/Pokemon Blue", []string{"Pokemon ", "Red/", "Pokemon ", "Blue"}},
		{"Élan Öl", []string{"Élan ", "Öl"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLabel(tt.name)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitLabel(%q) = %q, want %q", tt.name, got, tt.want)
			}
			if strings.Join(got, "") != tt.name {
				t.Errorf("segments of %q do not rejoin to the input", tt.name)
			}
		})
	}
}

func TestLabelLine(t *testing.T) {
	for i, wantY := range []float64{13, 23, 33} {
		x, y := LabelLine(i)
		if x != 4 || y != wantY {
			t.Errorf("LabelLine(%d) = (%v, %v), want (4, %v)", i, x, y, wantY)
		}
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{810, "810"},
		{71.111111, "71.11"},
		{12.5, "12.5"},
		{-0.001, "0"},
		{1079.999999, "1080"},
	}
	for _, tt := range tests {
		if got := Num(tt.in); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`Tom & Jerry <"1">`); got != "Tom &amp; Jerry &lt;&#34;1&#34;&gt;" {
		t.Errorf("EscapeXML() = %q", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "simple", false},
		{"simple", "simple", false},
		{"FLAT", "flat", false},
		{"handdrawn", "", true},
	}
	for _, tt := range tests {
		s, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if err != nil {
			if !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("Parse(%q) code = %s", tt.in, errors.GetCode(err))
			}
			continue
		}
		if s.Name() != tt.want {
			t.Errorf("Parse(%q).Name() = %q, want %q", tt.in, s.Name(), tt.want)
		}
	}
}

func TestRenderTile(t *testing.T) {
	tile := Tile{Name: "GrandTheftAutoV", Category: "PS3", Value: "21.04", X: 10, Y: 20.5, W: 100, H: 50, Fill: "#67608e"}

	for _, s := range []Style{Simple{}, Flat{}} {
		t.Run(s.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			s.RenderTile(&buf, tile)
			out := buf.String()

			for _, want := range []string{
				`class="cell" transform="translate(10, 20.5)"`,
				`class="tile" width="100" height="50"`,
				`data-name="GrandTheftAutoV"`,
				`data-category="PS3"`,
				`data-value="21.04"`,
				`fill="#67608e"`,
				`<tspan x="4" y="13"`,
				`<tspan x="4" y="43"`,
			} {
				if !strings.Contains(out, want) {
					t.Errorf("tile markup missing %q:\n%s", want, out)
				}
			}
			if n := strings.Count(out, "<tspan"); n != 4 {
				t.Errorf("got %d tspans, want 4", n)
			}
		})
	}
}

func TestRenderTileWithoutFill(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderTile(&buf, Tile{Name: "Mystery", Category: "Ouya", Value: "1", W: 10, H: 10})

	rect := buf.String()
	rect = rect[strings.Index(rect, "<rect"):]
	rect = rect[:strings.Index(rect, "/>")]
	if strings.Contains(rect, "fill=") {
		t.Errorf("tile with unknown category should have no fill attribute: %s", rect)
	}
}

func TestLabelColor(t *testing.T) {
	tests := []struct {
		fill string
		want string
	}{
		{"#07002e", "white"},
		{"#c2c2c2", "black"},
		{"#fff", "black"},
		{"", "black"},
		{"tomato", "black"},
	}
	for _, tt := range tests {
		if got := LabelColor(tt.fill); got != tt.want {
			t.Errorf("LabelColor(%q) = %q, want %q", tt.fill, got, tt.want)
		}
	}
}
