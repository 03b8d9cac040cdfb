package sink

import (
	"bytes"
	"fmt"
)

// Tooltip size inside a standalone SVG.
const (
	tooltipWidth  = 240
	tooltipHeight = 44
)

const svgTooltipJS = `
    (function () {
      const tip = document.getElementById('tooltip');
      if (!tip) return;
      const svg = tip.ownerSVGElement;
      const title = tip.querySelector('.tooltip-title');
      const body = tip.querySelector('.tooltip-body');
      const vb = svg.viewBox.baseVal;
      function show(ev) {
        const el = ev.currentTarget;
        const name = el.getAttribute('data-name');
        const category = el.getAttribute('data-category');
        const value = el.getAttribute('data-value');
        tip.setAttribute('data-value', value);
        title.textContent = name + ' (' + category + ')';
        body.textContent = value + ' units sold';
        const pt = svg.createSVGPoint();
        pt.x = ev.clientX; pt.y = ev.clientY;
        const p = pt.matrixTransform(svg.getScreenCTM().inverse());
        const x = Math.max(vb.x, Math.min(p.x + 12, vb.x + vb.width - %[1]d));
        const y = Math.max(vb.y, Math.min(p.y + 12, vb.y + vb.height - %[2]d));
        tip.setAttribute('transform', 'translate(' + x.toFixed(1) + ',' + y.toFixed(1) + ')');
        tip.setAttribute('visibility', 'visible');
      }
      function hide() { tip.setAttribute('visibility', 'hidden'); }
      svg.querySelectorAll('.tile').forEach(function (el) {
        el.addEventListener('mouseover', show);
        el.addEventListener('mousemove', show);
        el.addEventListener('mouseout', hide);
      });
    })();`

// renderSVGTooltip writes the single shared tooltip and its script. The
// tooltip is the last element so it paints above every tile.
func renderSVGTooltip(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <g id="tooltip" class="tooltip" visibility="hidden" data-value="" pointer-events="none">`+"\n")
	fmt.Fprintf(buf, `    <rect width="%d" height="%d" rx="4" ry="4" fill="#222" fill-opacity="0.9"/>`+"\n", tooltipWidth, tooltipHeight)
	buf.WriteString(`    <text class="tooltip-title" x="8" y="18" fill="white" font-size="12px" font-weight="bold"></text>` + "\n")
	buf.WriteString(`    <text class="tooltip-body" x="8" y="35" fill="white" font-size="11px"></text>` + "\n")
	buf.WriteString("  </g>\n")
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n",
		fmt.Sprintf(svgTooltipJS, tooltipWidth, tooltipHeight))
}
