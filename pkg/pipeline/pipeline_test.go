package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/salesmap/pkg/cache"
	"github.com/matzehuels/salesmap/pkg/errors"
	"github.com/matzehuels/salesmap/pkg/source"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

const sampleJSON = `{
  "name": "Video Game Sales Data Top 100",
  "children": [
    {"name": "Wii", "children": [
      {"name": "Wii Sports", "category": "Wii", "value": "82.53"},
      {"name": "Mario Kart Wii", "category": "Wii", "value": "35.52"}
    ]},
    {"name": "PS3", "children": [
      {"name": "GrandTheftAutoV", "category": "PS3", "value": "21.04"}
    ]}
  ]
}`

func newServer(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		vizType string
		format  string
		wantErr bool
	}{
		{VizTypeTreemap, "svg", false},
		{VizTypeTreemap, "html", false},
		{VizTypeTreemap, "json", false},
		{VizTypeTreemap, "png", false},
		{VizTypeTreemap, "pdf", false},
		{VizTypeTreemap, "dot", true},
		{VizTypeNodelink, "dot", false},
		{VizTypeNodelink, "html", true},
		{VizTypeTreemap, "SVG", true}, // case-sensitive
		{VizTypeTreemap, "", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.vizType, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q, %q) error = %v, wantErr %v", tt.vizType, tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q, %q) code = %s", tt.vizType, tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"flat", false},
		{"FLAT", false},
		{"handdrawn", true},
		{"", false}, // empty selects the default
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"treemap", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestSetLoadDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLoadDefaults()

	if opts.Source != source.DefaultURL {
		t.Errorf("Source should be %s, got %s", source.DefaultURL, opts.Source)
	}
	if opts.Retries != DefaultRetries {
		t.Errorf("Retries should be %d, got %d", DefaultRetries, opts.Retries)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Tiling != "squarify" {
		t.Errorf("Tiling should be squarify, got %s", opts.Tiling)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad tiling", Options{Tiling: "spiral"}, errors.ErrCodeInvalidTiling},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidInput},
		{"bad viz type", Options{VizType: "tower"}, errors.ErrCodeInvalidVizType},
		{"bad style", Options{Style: "neon"}, errors.ErrCodeInvalidStyle},
		{"format for other viz", Options{VizType: VizTypeNodelink, Formats: []string{"html"}}, errors.ErrCodeInvalidFormat},
		{"bad palette", Options{Palette: map[string]string{"PC": "red"}}, errors.ErrCodeInvalidPalette},
		{"negative retries", Options{Retries: -2}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	original := opts.ArtifactKeyOpts(FormatSVG)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.ArtifactKeyOpts(FormatSVG) != original {
		t.Error("options changed on second call")
	}
}

func TestArtifactKeyOptsVariant(t *testing.T) {
	base := Options{}
	base.SetRenderDefaults()

	titled := base
	titled.Title = "Other"

	overridden := base
	overridden.Palette = map[string]string{"PC": "#000000"}

	a := base.ArtifactKeyOpts(FormatHTML)
	if a.Palette != "" {
		t.Errorf("default options should have an empty variant, got %q", a.Palette)
	}
	if titled.ArtifactKeyOpts(FormatHTML) == a {
		t.Error("title should change the artifact key")
	}
	if overridden.ArtifactKeyOpts(FormatHTML) == a {
		t.Error("palette overrides should change the artifact key")
	}
}

func TestExecute(t *testing.T) {
	srv, hits := newServer(t, sampleJSON)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{
		Source:   srv.URL,
		Formats:  []string{FormatSVG, FormatHTML, FormatJSON},
		Tooltips: true,
	}

	res, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.RunID == "" {
		t.Error("RunID should be set")
	}
	if res.Stats.LeafCount != 3 || res.Stats.Categories != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.CacheInfo != (CacheInfo{}) {
		t.Errorf("first run should miss every cache: %+v", res.CacheInfo)
	}
	for _, f := range opts.Formats {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), `id="tooltip"`) {
		t.Error("svg should embed the tooltip")
	}

	var exported struct {
		Tiles []struct{ Name string } `json:"tiles"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &exported); err != nil {
		t.Fatal(err)
	}
	if len(exported.Tiles) != 3 {
		t.Errorf("json export has %d tiles", len(exported.Tiles))
	}

	again, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !again.CacheInfo.LoadHit || !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit every cache: %+v", again.CacheInfo)
	}
	if again.RunID == res.RunID {
		t.Error("each run should get a fresh RunID")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestExecuteNodelink(t *testing.T) {
	srv, _ := newServer(t, sampleJSON)
	runner := NewRunner(nil, nil, nil)

	res, err := runner.Execute(context.Background(), Options{
		Source:  srv.URL,
		VizType: VizTypeNodelink,
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph G {") {
		t.Errorf("dot artifact = %q", res.Artifacts[FormatDOT])
	}
	if _, err := treemap.Unmarshal(res.Artifacts[FormatJSON]); err != nil {
		t.Errorf("nodelink json should be a layout: %v", err)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"invalid json", `{"name": `, errors.ErrCodeFetch},
		{"empty tree", `{"name": "root", "children": []}`, errors.ErrCodeEmptyTree},
		{"zero value", `{"name": "root", "children": [{"name": "x", "category": "PC", "value": 0}]}`, errors.ErrCodeNonPositiveValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.body)
			res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Source: srv.URL})
			if !errors.Is(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
			if res != nil {
				t.Error("failed run should not return a result")
			}
		})
	}
}

func TestComputeLayoutWithoutHash(t *testing.T) {
	root, err := NewRunner(nil, nil, nil).Load(context.Background(), Options{Source: writeDataset(t)})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	l, err := NewRunner(nil, nil, nil).ComputeLayout(context.Background(), root, Options{Width: 400, Height: 300, Round: true})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	if l.Width != 400 || !l.Rounded || len(l.Leaves()) != 3 {
		t.Errorf("layout = %vx%v rounded=%v leaves=%d", l.Width, l.Height, l.Rounded, len(l.Leaves()))
	}
}

func TestRenderRequiresLayout(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()
	if _, err := Render(treemap.Layout{}, opts); err == nil {
		t.Error("rendering an empty layout should fail")
	}
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := t.TempDir() + "/sales.json"
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
