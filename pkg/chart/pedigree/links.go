package pedigree

import (
	"github.com/hwidmann/rootline/pkg/kin"
)

// buildLinks constructs spouse connectors and per-child parent junction
// routes over the placed nodes. Links touching the root are flagged
// highlighted. Nodes are visited in their placement order and adjacency
// lists are id-sorted, so link order is deterministic.
func buildLinks(res *Result, idx *kin.Index, gens map[string]int, cfg Config) {
	pos := nodePos(res.Nodes)

	seenSpouse := make(map[[2]string]bool)
	for i := range res.Nodes {
		node := &res.Nodes[i]
		id := node.ID

		// Spouse connectors between same-generation nodes.
		for _, sp := range idx.Spouses(id) {
			other, ok := pos[sp]
			if !ok || gens[sp] != gens[id] {
				continue
			}
			key := pairKey(id, sp)
			if seenSpouse[key] {
				continue
			}
			seenSpouse[key] = true
			res.Links = append(res.Links, Link{
				Kind:      LinkSpouse,
				PersonIDs: []string{key[0], key[1]},
				Routes: [][]Point{{
					center(node, cfg),
					center(other, cfg),
				}},
				Highlighted: id == res.RootID || sp == res.RootID,
			})
		}

		// Parent junction: all placed parents of this child share one
		// trunk point just left of the child column.
		var parents []string
		for _, p := range idx.Parents(id) {
			if _, ok := pos[p]; ok {
				parents = append(parents, p)
			}
		}
		if len(parents) == 0 {
			continue
		}

		childCenter := center(node, cfg)
		junction := Point{X: node.X - cfg.HorizontalGap/2, Y: childCenter.Y}

		link := Link{
			Kind:      LinkParent,
			PersonIDs: parents,
			ChildID:   id,
			Junction:  junction,
		}
		for _, p := range parents {
			pc := center(pos[p], cfg)
			rightEdge := Point{X: pos[p].X + cfg.NodeWidth, Y: pc.Y}
			link.Routes = append(link.Routes, []Point{
				rightEdge,
				{X: junction.X, Y: pc.Y},
				junction,
			})
			if p == res.RootID {
				link.Highlighted = true
			}
		}
		link.Routes = append(link.Routes, []Point{
			junction,
			{X: node.X, Y: childCenter.Y},
		})
		if id == res.RootID {
			link.Highlighted = true
		}
		res.Links = append(res.Links, link)
	}
}

// center returns the midpoint of a node box.
func center(n *Node, cfg Config) Point {
	return Point{X: n.X + cfg.NodeWidth/2, Y: n.Y + cfg.NodeHeight/2}
}

// pairKey canonicalizes an unordered id pair.
func pairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}
