package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/hwidmann/rootline/pkg/errors"
	"github.com/hwidmann/rootline/pkg/tree"
)

// ToDOT converts a pedigree layout to Graphviz DOT format, one rank per
// generation. Spouse pairs are joined with undirected-looking dashed
// edges, parent links with solid arrows into the child. The resulting
// DOT string can be rendered with [DOTToSVG] or any external Graphviz.
func ToDOT(l tree.Layout) (string, error) {
	if l.ChartType != tree.ChartPedigree {
		return "", errors.New(errors.ErrCodeInvalidChartType, "DOT export supports pedigree charts, got %q", l.ChartType)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ranks := make(map[int][]string)
	for _, n := range l.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n))}
		if n.IsRoot {
			attrs = append(attrs, "penwidth=2", "color=\"#e15759\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
		ranks[n.Generation] = append(ranks[n.Generation], n.ID)
	}

	buf.WriteString("\n")
	for _, link := range l.Links {
		switch link.Kind {
		case "spouse":
			if len(link.PersonIDs) == 2 {
				fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed];\n", link.PersonIDs[0], link.PersonIDs[1])
			}
		case "parent":
			for _, p := range link.PersonIDs {
				fmt.Fprintf(&buf, "  %q -> %q;\n", p, link.ChildID)
			}
		}
	}

	buf.WriteString("\n")
	gens := make([]int, 0, len(ranks))
	for g := range ranks {
		gens = append(gens, g)
	}
	slices.Sort(gens)
	for _, gen := range gens {
		ids := ranks[gen]
		if len(ids) < 2 {
			continue
		}
		quoted := make([]string, len(ids))
		for i, id := range ids {
			quoted[i] = strconv.Quote(id)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s } // generation %d\n", strings.Join(quoted, "; "), gen)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeLabel(n tree.PedigreeNode) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// DOTToSVG renders a DOT graph to SVG using Graphviz.
func DOTToSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg tag to a zero-origin
// viewBox with explicit pixel size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
