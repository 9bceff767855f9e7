// Package fan lays out a radial ancestor/descendant fan chart.
//
// Two independent trees grow from the root: ancestors fill the upper
// half-circle [π, 2π) and descendants the lower half [0, π). Each
// sector's angular span is proportional to its subtree's leaf count, so
// sibling spans always sum to the parent's span. Radii grow linearly
// with depth around a fixed central circle for the root.
package fan

import (
	"math"

	"github.com/hwidmann/rootline/pkg/kin"
)

// Config controls fan chart geometry. Zero fields fall back to the
// [DefaultConfig] values.
type Config struct {
	RootRadius float64 `json:"root_radius,omitempty" toml:"root_radius"` // radius of the central root circle
	RingWidth  float64 `json:"ring_width,omitempty" toml:"ring_width"`   // radial thickness of each depth ring
}

// DefaultConfig returns the standard fan geometry.
func DefaultConfig() Config {
	return Config{RootRadius: 60, RingWidth: 56}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RootRadius <= 0 {
		c.RootRadius = d.RootRadius
	}
	if c.RingWidth <= 0 {
		c.RingWidth = d.RingWidth
	}
	return c
}

// Chart sides.
const (
	SideAncestor   = "ancestor"
	SideDescendant = "descendant"
)

// Sector is one annular sector of the fan. Angles are radians measured
// counterclockwise from the positive x axis.
type Sector struct {
	ID          string
	Name        string
	Depth       int
	Side        string
	StartAngle  float64
	EndAngle    float64
	InnerRadius float64
	OuterRadius float64
	LineageID   string // the depth-1 person whose subtree this sector belongs to
}

// Result is the computed fan geometry.
type Result struct {
	Root         Sector   // central circle, depth 0, full span
	Nodes        []Sector // depth ≥ 1 in pre-order, ancestor side first
	MaxDepth     int
	LineageOrder []string // depth-1 ids in pre-order, for stable color assignment
}

// treeNode is one node of the per-side traversal tree.
type treeNode struct {
	id       string
	children []*treeNode
	leaves   int
}

// Layout computes the fan chart for rootID.
//
// Returns [kin.ErrUnknownRoot] if rootID is not in people. A person
// reachable over two ancestor paths is placed once, under the path
// discovered first. An empty side leaves that half-circle blank.
func Layout(people []kin.Person, rels []kin.Relationship, rootID string, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	byID := kin.PeopleByID(people)
	if _, ok := byID[rootID]; !ok {
		return nil, kin.ErrUnknownRoot
	}
	idx := kin.NewIndex(rels)

	ancestors := buildTree(rootID, byID, idx.Parents)
	descendants := buildTree(rootID, byID, idx.Children)

	res := &Result{
		Root: Sector{
			ID:          rootID,
			Name:        byID[rootID].DisplayName(),
			EndAngle:    2 * math.Pi,
			OuterRadius: cfg.RootRadius,
		},
	}

	emitSide(res, byID, cfg, ancestors, SideAncestor, math.Pi, 2*math.Pi)
	emitSide(res, byID, cfg, descendants, SideDescendant, 0, math.Pi)
	return res, nil
}

// buildTree grows one side's tree from start by repeatedly following
// next. Each side keeps its own visited set, so the two halves are
// independent; within a side every person appears at most once.
func buildTree(start string, byID map[string]kin.Person, next func(string) []string) *treeNode {
	visited := map[string]bool{start: true}
	return grow(start, byID, next, visited)
}

func grow(id string, byID map[string]kin.Person, next func(string) []string, visited map[string]bool) *treeNode {
	node := &treeNode{id: id}

	var childIDs []string
	for _, c := range next(id) {
		if visited[c] {
			continue
		}
		if _, ok := byID[c]; !ok {
			continue
		}
		visited[c] = true
		childIDs = append(childIDs, c)
	}
	kin.SortIDs(childIDs, byID)

	for _, c := range childIDs {
		child := grow(c, byID, next, visited)
		node.children = append(node.children, child)
		node.leaves += child.leaves
	}
	if len(node.children) == 0 {
		node.leaves = 1
	}
	return node
}

// emitSide subdivides [start, end) among the tree's depth-1 children and
// recurses, appending sectors in pre-order.
func emitSide(res *Result, byID map[string]kin.Person, cfg Config, root *treeNode, side string, start, end float64) {
	angle := start
	span := end - start
	for _, child := range root.children {
		childSpan := span * float64(child.leaves) / float64(root.leaves)
		res.LineageOrder = append(res.LineageOrder, child.id)
		emitSubtree(res, byID, cfg, child, side, 1, angle, angle+childSpan, child.id)
		angle += childSpan
	}
}

func emitSubtree(res *Result, byID map[string]kin.Person, cfg Config, node *treeNode, side string, depth int, start, end float64, lineage string) {
	res.Nodes = append(res.Nodes, Sector{
		ID:          node.id,
		Name:        byID[node.id].DisplayName(),
		Depth:       depth,
		Side:        side,
		StartAngle:  start,
		EndAngle:    end,
		InnerRadius: cfg.RootRadius + cfg.RingWidth*float64(depth-1),
		OuterRadius: cfg.RootRadius + cfg.RingWidth*float64(depth),
		LineageID:   lineage,
	})
	if depth > res.MaxDepth {
		res.MaxDepth = depth
	}

	angle := start
	span := end - start
	for _, child := range node.children {
		childSpan := span * float64(child.leaves) / float64(node.leaves)
		emitSubtree(res, byID, cfg, child, side, depth+1, angle, angle+childSpan, lineage)
		angle += childSpan
	}
}
