// Package render turns computed chart layouts into static artifacts.
//
// The layout engines return pure geometry; this package owns the visual
// encoding: SVG documents for the three chart families, JSON via the
// tree serialization format, and a Graphviz DOT export of the pedigree
// graph. No interactivity or viewer state is produced.
package render

import (
	"strings"

	"github.com/hwidmann/rootline/pkg/errors"
	"github.com/hwidmann/rootline/pkg/tree"
)

// SVG renders a layout to an SVG document.
func SVG(l tree.Layout) ([]byte, error) {
	switch l.ChartType {
	case tree.ChartPedigree:
		return pedigreeSVG(l), nil
	case tree.ChartFan:
		return fanSVG(l), nil
	case tree.ChartTimeline:
		return timelineSVG(l), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidChartType, "cannot render chart type %q", l.ChartType)
	}
}

// JSON renders a layout to its JSON serialization.
func JSON(l tree.Layout) ([]byte, error) {
	return tree.MarshalLayout(l)
}

// lineageColors is the palette cycled over depth-1 lineages.
var lineageColors = []string{
	"#4e79a7", "#f28e2b", "#59a14f", "#e15759",
	"#76b7b2", "#edc948", "#b07aa1", "#9c755f",
}

// colorFor maps a lineage id to a palette color using the layout's
// lineage order, falling back to the first color for the root itself.
func colorFor(lineageID string, order []string) string {
	for i, id := range order {
		if id == lineageID {
			return lineageColors[i%len(lineageColors)]
		}
	}
	return lineageColors[0]
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
