// Package pipeline provides the core chart pipeline for Rootline.
//
// This package implements the complete load → layout → render pipeline
// shared by the CLI and the HTTP API. Centralizing it keeps behavior
// and caching consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and validate the family tree from a JSON file or an
//     in-memory tree
//  2. Layout: run the chart engine for the requested chart type
//  3. Render: generate output artifacts (SVG, JSON, DOT)
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    TreePath:  "family.json",
//	    ChartType: "pedigree",
//	    RootID:    "p-042",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hwidmann/rootline/pkg/cache"
	"github.com/hwidmann/rootline/pkg/chart/fan"
	"github.com/hwidmann/rootline/pkg/chart/pedigree"
	"github.com/hwidmann/rootline/pkg/errors"
	"github.com/hwidmann/rootline/pkg/tree"
)

// DefaultChartType is the chart produced when none is requested.
const DefaultChartType = tree.ChartPedigree

// Format constants for output formats.
const (
	FormatSVG    = "svg"
	FormatJSON   = "json"
	FormatDOT    = "dot"
	FormatDOTSVG = "dot-svg" // pedigree graph laid out by Graphviz
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:    true,
	FormatJSON:   true,
	FormatDOT:    true,
	FormatDOTSVG: true,
}

// ValidChartTypes is the set of supported chart types.
var ValidChartTypes = map[string]bool{
	tree.ChartPedigree: true,
	tree.ChartFan:      true,
	tree.ChartTimeline: true,
}

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	TreePath string     `json:"tree_path,omitempty"`
	Tree     *tree.Tree `json:"tree,omitempty"` // in-memory tree, takes precedence over TreePath
	Refresh  bool       `json:"refresh,omitempty"`

	// Layout options
	ChartType   string          `json:"chart_type,omitempty"`
	RootID      string          `json:"root_id,omitempty"`
	Pedigree    pedigree.Config `json:"pedigree,omitempty"`
	Fan         fan.Config      `json:"fan,omitempty"`
	Filters     []string        `json:"filters,omitempty"`      // timeline claim types
	CurrentYear int             `json:"current_year,omitempty"` // timeline end year for open bars
	RowGap      float64         `json:"row_gap,omitempty"`      // timeline packing gap in years

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the loaded family tree.
	Tree tree.Tree

	// TreeHash is the content hash of the tree.
	TreeHash string

	// Layout contains the computed chart geometry.
	Layout tree.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PeopleCount       int
	RelationshipCount int
	ClaimCount        int
	LoadTime          time.Duration
	LayoutTime        time.Duration
	RenderTime        time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the parsed tree came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, dot, dot-svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateChartType checks that a chart type is valid.
func ValidateChartType(chartType string) error {
	if !ValidChartTypes[chartType] {
		return errors.New(errors.ErrCodeInvalidChartType,
			"invalid chart type: %q (must be one of: pedigree, fan, timeline)", chartType)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Tree == nil && o.TreePath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "tree or tree_path is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.ChartType == "" {
		o.ChartType = DefaultChartType
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Pedigree and fan charts require a root person; timelines do not.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateChartType(o.ChartType); err != nil {
		return err
	}
	if o.ChartType != tree.ChartTimeline && o.RootID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "root_id is required for %s charts", o.ChartType)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if (f == FormatDOT || f == FormatDOTSVG) && o.ChartType != tree.ChartPedigree {
			return errors.New(errors.ErrCodeInvalidFormat,
				"format %q is only available for pedigree charts", f)
		}
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	opts := cache.LayoutKeyOpts{
		ChartType:   o.ChartType,
		RootID:      o.RootID,
		Filters:     o.Filters,
		CurrentYear: o.CurrentYear,
	}
	switch o.ChartType {
	case tree.ChartPedigree:
		opts.Geometry = o.Pedigree
	case tree.ChartFan:
		opts.Geometry = o.Fan
	case tree.ChartTimeline:
		opts.Geometry = o.RowGap
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}
