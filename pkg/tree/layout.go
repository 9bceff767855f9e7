package tree

import (
	"github.com/hwidmann/rootline/pkg/chart/fan"
	"github.com/hwidmann/rootline/pkg/chart/pedigree"
	"github.com/hwidmann/rootline/pkg/chart/timeline"
)

// Chart types.
const (
	ChartPedigree = "pedigree"
	ChartFan      = "fan"
	ChartTimeline = "timeline"
)

// Layout is the serialization format for one computed chart. ChartType
// selects which field groups are populated; the rest stay empty.
type Layout struct {
	ChartType string `json:"chart_type" bson:"chart_type"`
	RootID    string `json:"root_id,omitempty" bson:"root_id,omitempty"`

	// Pedigree charts.
	Nodes      []PedigreeNode `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Links      []PedigreeLink `json:"links,omitempty" bson:"links,omitempty"`
	Width      float64        `json:"width,omitempty" bson:"width,omitempty"`
	Height     float64        `json:"height,omitempty" bson:"height,omitempty"`
	NodeWidth  float64        `json:"node_width,omitempty" bson:"node_width,omitempty"`
	NodeHeight float64        `json:"node_height,omitempty" bson:"node_height,omitempty"`
	Crossings  int            `json:"crossings,omitempty" bson:"crossings,omitempty"`

	// Fan charts.
	Root         *FanSector  `json:"root,omitempty" bson:"root,omitempty"`
	Sectors      []FanSector `json:"sectors,omitempty" bson:"sectors,omitempty"`
	MaxDepth     int         `json:"max_depth,omitempty" bson:"max_depth,omitempty"`
	LineageOrder []string    `json:"lineage_order,omitempty" bson:"lineage_order,omitempty"`

	// Timelines.
	Events         []TimelineEvent    `json:"events,omitempty" bson:"events,omitempty"`
	Lifespans      []TimelineLifespan `json:"lifespans,omitempty" bson:"lifespans,omitempty"`
	MinYear        float64            `json:"min_year,omitempty" bson:"min_year,omitempty"`
	MaxYear        float64            `json:"max_year,omitempty" bson:"max_year,omitempty"`
	EventRowCount  int                `json:"event_row_count,omitempty" bson:"event_row_count,omitempty"`
	PersonRowCount int                `json:"person_row_count,omitempty" bson:"person_row_count,omitempty"`
}

// Point is a 2D coordinate in chart space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// PedigreeNode is one positioned person box.
type PedigreeNode struct {
	ID         string  `json:"id" bson:"id"`
	Name       string  `json:"name,omitempty" bson:"name,omitempty"`
	Generation int     `json:"generation" bson:"generation"`
	Cluster    int     `json:"cluster" bson:"cluster"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	IsRoot     bool    `json:"is_root,omitempty" bson:"is_root,omitempty"`
}

// PedigreeLink is one routed connector.
type PedigreeLink struct {
	Kind        string    `json:"kind" bson:"kind"`
	PersonIDs   []string  `json:"person_ids" bson:"person_ids"`
	ChildID     string    `json:"child_id,omitempty" bson:"child_id,omitempty"`
	Junction    *Point    `json:"junction,omitempty" bson:"junction,omitempty"`
	Routes      [][]Point `json:"routes" bson:"routes"`
	Highlighted bool      `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

// FanSector is one annular sector, angles in radians.
type FanSector struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name,omitempty" bson:"name,omitempty"`
	Depth       int     `json:"depth" bson:"depth"`
	Side        string  `json:"side,omitempty" bson:"side,omitempty"`
	StartAngle  float64 `json:"start_angle" bson:"start_angle"`
	EndAngle    float64 `json:"end_angle" bson:"end_angle"`
	InnerRadius float64 `json:"inner_radius" bson:"inner_radius"`
	OuterRadius float64 `json:"outer_radius" bson:"outer_radius"`
	LineageID   string  `json:"lineage_id,omitempty" bson:"lineage_id,omitempty"`
}

// TimelineEvent is one displayed event bar or marker.
type TimelineEvent struct {
	Type        string   `json:"type" bson:"type"`
	Label       string   `json:"label,omitempty" bson:"label,omitempty"`
	StartYear   float64  `json:"start_year" bson:"start_year"`
	EndYear     *float64 `json:"end_year,omitempty" bson:"end_year,omitempty"`
	PersonIDs   []string `json:"person_ids" bson:"person_ids"`
	PersonNames []string `json:"person_names,omitempty" bson:"person_names,omitempty"`
	MergedCount int      `json:"merged_count,omitempty" bson:"merged_count,omitempty"`
	Row         int      `json:"row" bson:"row"`
}

// TimelineLifespan is one person's bar.
type TimelineLifespan struct {
	PersonID  string  `json:"person_id" bson:"person_id"`
	Name      string  `json:"name,omitempty" bson:"name,omitempty"`
	StartYear float64 `json:"start_year" bson:"start_year"`
	EndYear   float64 `json:"end_year" bson:"end_year"`
	Open      bool    `json:"open,omitempty" bson:"open,omitempty"`
	Row       int     `json:"row" bson:"row"`
}

// FromPedigree converts a pedigree result to its serialization format.
func FromPedigree(res *pedigree.Result) Layout {
	out := Layout{
		ChartType:  ChartPedigree,
		RootID:     res.RootID,
		Width:      res.Width,
		Height:     res.Height,
		NodeWidth:  res.NodeWidth,
		NodeHeight: res.NodeHeight,
		Crossings:  res.Crossings,
		Nodes:      make([]PedigreeNode, len(res.Nodes)),
	}
	for i, n := range res.Nodes {
		out.Nodes[i] = PedigreeNode{
			ID:         n.ID,
			Name:       n.Name,
			Generation: n.Generation,
			Cluster:    n.Cluster,
			X:          n.X,
			Y:          n.Y,
			IsRoot:     n.IsRoot,
		}
	}
	for _, l := range res.Links {
		link := PedigreeLink{
			Kind:        l.Kind,
			PersonIDs:   l.PersonIDs,
			ChildID:     l.ChildID,
			Routes:      make([][]Point, len(l.Routes)),
			Highlighted: l.Highlighted,
		}
		if l.Kind == pedigree.LinkParent {
			link.Junction = &Point{X: l.Junction.X, Y: l.Junction.Y}
		}
		for ri, route := range l.Routes {
			pts := make([]Point, len(route))
			for pi, p := range route {
				pts[pi] = Point{X: p.X, Y: p.Y}
			}
			link.Routes[ri] = pts
		}
		out.Links = append(out.Links, link)
	}
	return out
}

// FromFan converts a fan result to its serialization format.
func FromFan(res *fan.Result) Layout {
	root := fanSector(res.Root)
	out := Layout{
		ChartType:    ChartFan,
		RootID:       res.Root.ID,
		Root:         &root,
		Sectors:      make([]FanSector, len(res.Nodes)),
		MaxDepth:     res.MaxDepth,
		LineageOrder: res.LineageOrder,
	}
	for i, s := range res.Nodes {
		out.Sectors[i] = fanSector(s)
	}
	return out
}

func fanSector(s fan.Sector) FanSector {
	return FanSector{
		ID:          s.ID,
		Name:        s.Name,
		Depth:       s.Depth,
		Side:        s.Side,
		StartAngle:  s.StartAngle,
		EndAngle:    s.EndAngle,
		InnerRadius: s.InnerRadius,
		OuterRadius: s.OuterRadius,
		LineageID:   s.LineageID,
	}
}

// FromTimeline converts a timeline result to its serialization format.
func FromTimeline(res *timeline.Result) Layout {
	out := Layout{
		ChartType:      ChartTimeline,
		MinYear:        res.MinYear,
		MaxYear:        res.MaxYear,
		EventRowCount:  res.EventRowCount,
		PersonRowCount: res.PersonRowCount,
	}
	for _, e := range res.Events {
		out.Events = append(out.Events, TimelineEvent{
			Type:        e.Type,
			Label:       e.Label,
			StartYear:   e.StartYear,
			EndYear:     e.EndYear,
			PersonIDs:   e.PersonIDs,
			PersonNames: e.PersonNames,
			MergedCount: e.MergedCount,
			Row:         e.Row,
		})
	}
	for _, l := range res.People {
		out.Lifespans = append(out.Lifespans, TimelineLifespan{
			PersonID:  l.PersonID,
			Name:      l.Name,
			StartYear: l.StartYear,
			EndYear:   l.EndYear,
			Open:      l.Open,
			Row:       l.Row,
		})
	}
	return out
}
