package render

import (
	"bytes"
	"fmt"

	"github.com/hwidmann/rootline/pkg/tree"
)

const (
	pedigreeNodeFill      = "#ffffff"
	pedigreeNodeStroke    = "#444444"
	pedigreeRootStroke    = "#e15759"
	pedigreeLinkStroke    = "#999999"
	pedigreeHighlight     = "#e15759"
	pedigreeFontSize      = 13.0
	pedigreeCornerRadius  = 6.0
	pedigreeDefaultWidth  = 170.0
	pedigreeDefaultHeight = 64.0
)

// pedigreeSVG renders the node-link pedigree chart. Links draw first so
// node boxes cover the route ends.
func pedigreeSVG(l tree.Layout) []byte {
	nodeW, nodeH := l.NodeWidth, l.NodeHeight
	if nodeW <= 0 {
		nodeW = pedigreeDefaultWidth
	}
	if nodeH <= 0 {
		nodeH = pedigreeDefaultHeight
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	for _, link := range l.Links {
		stroke := pedigreeLinkStroke
		width := 1.5
		if link.Highlighted {
			stroke = pedigreeHighlight
			width = 2.5
		}
		for _, route := range link.Routes {
			buf.WriteString(`  <polyline points="`)
			for i, p := range route {
				if i > 0 {
					buf.WriteByte(' ')
				}
				fmt.Fprintf(&buf, "%.1f,%.1f", p.X, p.Y)
			}
			fmt.Fprintf(&buf, `" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n", stroke, width)
		}
	}

	for _, n := range l.Nodes {
		stroke := pedigreeNodeStroke
		width := 1.0
		if n.IsRoot {
			stroke = pedigreeRootStroke
			width = 2.5
		}
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			n.X, n.Y, nodeW, nodeH, pedigreeCornerRadius, pedigreeNodeFill, stroke, width)
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			n.X+nodeW/2, n.Y+nodeH/2, pedigreeFontSize, escapeText(n.Name))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
