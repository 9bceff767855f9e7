package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hwidmann/rootline/pkg/tree"
)

const (
	fanPadding    = 24.0
	fanRootFill   = "#ffffff"
	fanStroke     = "#ffffff"
	fanFontSize   = 12.0
	fanLabelColor = "#222222"
)

// fanSVG renders the radial fan. Ancestor sectors land in the upper
// half of the image, descendants in the lower half.
func fanSVG(l tree.Layout) []byte {
	maxR := 0.0
	if l.Root != nil {
		maxR = l.Root.OuterRadius
	}
	for _, s := range l.Sectors {
		maxR = math.Max(maxR, s.OuterRadius)
	}

	size := 2 * (maxR + fanPadding)
	cx, cy := size/2, size/2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		size, size, size, size)

	for _, s := range l.Sectors {
		fill := colorFor(s.LineageID, l.LineageOrder)
		fmt.Fprintf(&buf, `  <path d="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
			sectorPath(cx, cy, s), fill, sectorOpacity(s.Depth), fanStroke)
	}

	if l.Root != nil {
		fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#444444" stroke-width="2"/>`+"\n",
			cx, cy, l.Root.OuterRadius, fanRootFill)
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			cx, cy, fanFontSize, fanLabelColor, escapeText(l.Root.Name))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// sectorPath builds the annular sector path: outer arc from start to
// end, a radial line inward, the inner arc back, and close.
func sectorPath(cx, cy float64, s tree.FanSector) string {
	x1, y1 := polar(cx, cy, s.OuterRadius, s.StartAngle)
	x2, y2 := polar(cx, cy, s.OuterRadius, s.EndAngle)
	x3, y3 := polar(cx, cy, s.InnerRadius, s.EndAngle)
	x4, y4 := polar(cx, cy, s.InnerRadius, s.StartAngle)

	large := 0
	if s.EndAngle-s.StartAngle > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f Z",
		x1, y1, s.OuterRadius, s.OuterRadius, large, x2, y2,
		x3, y3, s.InnerRadius, s.InnerRadius, large, x4, y4)
}

// polar converts chart angles to SVG coordinates. SVG y grows downward,
// so the ancestor half [π, 2π) maps above the center.
func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

// sectorOpacity fades deeper rings slightly.
func sectorOpacity(depth int) float64 {
	o := 1.0 - 0.12*float64(depth-1)
	if o < 0.4 {
		o = 0.4
	}
	return o
}
