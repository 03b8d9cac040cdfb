package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/salesmap/pkg/palette"
	"github.com/matzehuels/salesmap/pkg/render/treemap/styles"
	"github.com/matzehuels/salesmap/pkg/treemap"
)

const (
	DefaultTitle       = "Video Game Sales"
	DefaultDescription = "Top 100 Most Sold Video Games Grouped by Platform"
)

const pageCSS = `
    body { font-family: sans-serif; margin: 24px; background: #fafafa; color: #222; }
    #title { margin: 0 0 4px; }
    #description { margin: 0 0 16px; color: #555; }
    #container svg, #legend svg { display: block; }
    #legend { margin-top: 16px; }
    #tooltip { position: absolute; pointer-events: none; opacity: 0; padding: 6px 10px;
               background: rgba(34, 34, 34, 0.9); color: white; border-radius: 4px;
               font-size: 12px; transition: opacity 0.1s ease; }
    #tooltip h3 { margin: 0 0 2px; font-size: 13px; }
    #tooltip p { margin: 0; }`

const pageJS = `
    (function () {
      const tip = document.getElementById('tooltip');
      function show(ev) {
        const el = ev.currentTarget;
        const value = el.getAttribute('data-value');
        tip.setAttribute('data-value', value);
        const h = document.createElement('h3');
        h.textContent = el.getAttribute('data-name') + ' (' + el.getAttribute('data-category') + ')';
        const p = document.createElement('p');
        p.textContent = value + ' units sold';
        tip.replaceChildren(h, p);
        tip.style.left = (ev.pageX + 12) + 'px';
        tip.style.top = (ev.pageY + 12) + 'px';
        tip.style.opacity = 0.9;
      }
      function hide() { tip.style.opacity = 0; }
      document.querySelectorAll('#container .tile').forEach(function (el) {
        el.addEventListener('mouseover', show);
        el.addEventListener('mousemove', show);
        el.addEventListener('mouseout', hide);
      });
    })();`

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title       string
	description string
	style       styles.Style
	palette     *palette.Table
	legend      bool
	tooltips    bool
}

func WithTitle(s string) HTMLOption           { return func(r *htmlRenderer) { r.title = s } }
func WithDescription(s string) HTMLOption     { return func(r *htmlRenderer) { r.description = s } }
func WithHTMLStyle(s styles.Style) HTMLOption { return func(r *htmlRenderer) { r.style = s } }
func WithHTMLPalette(p *palette.Table) HTMLOption {
	return func(r *htmlRenderer) { r.palette = p }
}

// WithoutLegend leaves the #legend host empty.
func WithoutLegend() HTMLOption { return func(r *htmlRenderer) { r.legend = false } }

// WithoutTooltips omits the #tooltip element and hover script.
func WithoutTooltips() HTMLOption { return func(r *htmlRenderer) { r.tooltips = false } }

// RenderHTML renders a standalone page: the treemap inside #container, the
// legend inside #legend and one shared #tooltip div driven by the tiles'
// hover events.
func RenderHTML(l treemap.Layout, opts ...HTMLOption) []byte {
	r := htmlRenderer{
		title:       DefaultTitle,
		description: DefaultDescription,
		style:       styles.Simple{},
		palette:     palette.Default(),
		legend:      true,
		tooltips:    true,
	}
	for _, opt := range opts {
		opt(&r)
	}

	svg := RenderSVG(l, WithStyle(r.style), WithPalette(r.palette))

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", pageCSS)
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, "  <h1 id=\"title\">%s</h1>\n", html.EscapeString(r.title))
	fmt.Fprintf(&buf, "  <p id=\"description\">%s</p>\n", html.EscapeString(r.description))

	buf.WriteString("  <div id=\"container\">\n")
	buf.Write(svg)
	buf.WriteString("  </div>\n")

	buf.WriteString("  <div id=\"legend\">\n")
	if r.legend {
		buf.Write(RenderLegend(WithLegendStyle(r.style), WithLegendPalette(r.palette)))
	}
	buf.WriteString("  </div>\n")

	if r.tooltips {
		buf.WriteString("  <div id=\"tooltip\" class=\"tooltip\" data-value=\"\"></div>\n")
		fmt.Fprintf(&buf, "  <script>%s\n  </script>\n", pageJS)
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
