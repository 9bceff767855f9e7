// Package pedigree lays out a node-link ancestor/descendant diagram rooted
// at one person.
//
// The layout is a generation × order grid: breadth-first generation
// assignment picks the column, spouse/sibling clusters are ordered within
// each column by a bounded median-sweep heuristic, and links are routed as
// straight spouse connectors plus per-child parent junctions.
//
// Layout is a pure function of its inputs. Identical people, relationships,
// root and config produce identical geometry regardless of slice ordering;
// all ties break on the (surname, given name, id) comparator.
package pedigree

import (
	"math"

	"github.com/hwidmann/rootline/pkg/kin"
)

// Config controls pedigree chart geometry. The zero value is usable;
// zero fields fall back to the [DefaultConfig] values.
type Config struct {
	NodeWidth     float64 `json:"node_width,omitempty" toml:"node_width"`         // box width per person
	NodeHeight    float64 `json:"node_height,omitempty" toml:"node_height"`       // box height per person
	HorizontalGap float64 `json:"horizontal_gap,omitempty" toml:"horizontal_gap"` // gap between generation columns
	VerticalGap   float64 `json:"vertical_gap,omitempty" toml:"vertical_gap"`     // gap between nodes inside a cluster
	ClusterGap    float64 `json:"cluster_gap,omitempty" toml:"cluster_gap"`       // extra gap between clusters in one column
	Padding       float64 `json:"padding,omitempty" toml:"padding"`               // translation applied to the finished bounding box
	SweepPairs    int     `json:"sweep_pairs,omitempty" toml:"sweep_pairs"`       // forward+backward median sweep pairs
}

// DefaultConfig returns the geometry used when the caller does not care.
func DefaultConfig() Config {
	return Config{
		NodeWidth:     170,
		NodeHeight:    64,
		HorizontalGap: 70,
		VerticalGap:   22,
		ClusterGap:    38,
		Padding:       40,
		SweepPairs:    7,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.NodeWidth <= 0 {
		c.NodeWidth = d.NodeWidth
	}
	if c.NodeHeight <= 0 {
		c.NodeHeight = d.NodeHeight
	}
	if c.HorizontalGap <= 0 {
		c.HorizontalGap = d.HorizontalGap
	}
	if c.VerticalGap <= 0 {
		c.VerticalGap = d.VerticalGap
	}
	if c.ClusterGap <= 0 {
		c.ClusterGap = d.ClusterGap
	}
	if c.Padding <= 0 {
		c.Padding = d.Padding
	}
	if c.SweepPairs <= 0 {
		c.SweepPairs = d.SweepPairs
	}
	return c
}

// Point is a 2D coordinate in chart space.
type Point struct {
	X float64
	Y float64
}

// Node is one positioned person box.
type Node struct {
	ID         string
	Name       string
	Generation int // signed; ancestors negative, descendants positive
	Cluster    int // cluster grouping id, unique across the layout
	X          float64
	Y          float64
	IsRoot     bool
}

// Link kinds.
const (
	LinkSpouse = "spouse"
	LinkParent = "parent"
)

// Link is one routed connector.
//
// A spouse link connects two same-generation nodes with a single
// two-point route. A parent link merges all recorded parents of one
// child into a shared junction: one route per parent runs into Junction,
// and a final route runs from Junction to the child. This avoids
// near-parallel duplicate lines when a child has two or more recorded
// parents.
type Link struct {
	Kind        string
	PersonIDs   []string  // spouse pair, or the parent ids feeding the junction
	ChildID     string    // parent links only
	Junction    Point     // parent links only: shared trunk point
	Routes      [][]Point // polylines to draw
	Highlighted bool      // true when the link touches the root person
}

// Result is the computed pedigree geometry. NodeWidth and NodeHeight
// echo the box size the coordinates were computed for, so renderers
// need no access to the config.
type Result struct {
	RootID     string
	Nodes      []Node
	Links      []Link
	Width      float64
	Height     float64
	NodeWidth  float64
	NodeHeight float64
	Crossings  int // parent-link crossings remaining after the sweeps
	Sweeps     int // sweep pairs actually run before early exit
}

// Layout computes the pedigree chart for rootID.
//
// Returns [kin.ErrUnknownRoot] if rootID is not in people. People
// unreachable from the root are excluded. A root with no relationships
// yields a single node, zero links and a degenerate bounding box.
func Layout(people []kin.Person, rels []kin.Relationship, rootID string, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	byID := kin.PeopleByID(people)
	idx := kin.NewIndex(rels)

	gens, err := kin.GenerationsWithIndex(byID, idx, rootID)
	if err != nil {
		return nil, err
	}

	orders := buildClusters(byID, idx, gens)
	sweeps := minimizeCrossings(orders, idx, gens, cfg.SweepPairs)

	res := &Result{
		RootID:     rootID,
		NodeWidth:  cfg.NodeWidth,
		NodeHeight: cfg.NodeHeight,
		Sweeps:     sweeps,
	}
	place(res, orders, byID, gens, cfg)
	buildLinks(res, idx, gens, cfg)
	res.Crossings = totalCrossings(orders, idx, gens)
	return res, nil
}

// place assigns grid coordinates: x from the generation column, y from
// cumulative stacking in final cluster order, then translates everything
// to the padding origin.
func place(res *Result, orders *generationOrders, byID map[string]kin.Person, gens map[string]int, cfg Config) {
	colStride := cfg.NodeWidth + cfg.HorizontalGap
	rowStride := cfg.NodeHeight + cfg.VerticalGap

	var maxX, maxY float64
	cluster := 0
	for _, g := range orders.generations {
		x := float64(g-orders.generations[0])*colStride + cfg.Padding
		y := cfg.Padding
		for ci, cl := range orders.byGen[g] {
			if ci > 0 {
				y += cfg.ClusterGap
			}
			for _, id := range cl.members {
				res.Nodes = append(res.Nodes, Node{
					ID:         id,
					Name:       byID[id].DisplayName(),
					Generation: gens[id],
					Cluster:    cluster,
					X:          x,
					Y:          y,
					IsRoot:     id == res.RootID,
				})
				maxX = math.Max(maxX, x)
				maxY = math.Max(maxY, y)
				y += rowStride
			}
			y -= cfg.VerticalGap // stride overshoots past the last member
			cluster++
		}
	}

	res.Width = maxX + cfg.NodeWidth + cfg.Padding
	res.Height = maxY + cfg.NodeHeight + cfg.Padding
}

// nodePos builds an id → node lookup for link routing.
func nodePos(nodes []Node) map[string]*Node {
	m := make(map[string]*Node, len(nodes))
	for i := range nodes {
		m[nodes[i].ID] = &nodes[i]
	}
	return m
}
