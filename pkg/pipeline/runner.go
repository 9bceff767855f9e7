package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hwidmann/rootline/pkg/cache"
	"github.com/hwidmann/rootline/pkg/observability"
	"github.com/hwidmann/rootline/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	t, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Tree = t
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PeopleCount = len(t.People)
	result.Stats.RelationshipCount = len(t.Relationships)
	result.Stats.ClaimCount = len(t.Claims)
	result.CacheInfo.LoadHit = loadHit

	// Compute tree hash for cache keys and API responses
	if treeData, err := tree.MarshalTree(t); err == nil {
		result.TreeHash = cache.Hash(treeData)
	}

	r.Logger.Info("loaded tree",
		"people", len(t.People),
		"relationships", len(t.Relationships),
		"claims", len(t.Claims),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"chart", opts.ChartType,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the tree with caching and returns cache hit info.
//
// An in-memory tree bypasses the cache entirely. A file source is keyed
// on path, modification time and size, so an edited file invalidates
// its cached entry without a Refresh.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (tree.Tree, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return tree.Tree{}, false, err
	}
	r.applyLogger(&opts)

	source := opts.TreePath
	if opts.Tree != nil {
		source = "inline"
	}
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)

	if opts.Tree != nil {
		err := opts.Tree.Validate()
		observability.Pipeline().OnLoadComplete(ctx, source, len(opts.Tree.People), time.Since(start), err)
		if err != nil {
			return tree.Tree{}, false, err
		}
		return *opts.Tree, false, nil
	}

	var keyOpts cache.TreeKeyOpts
	if info, err := os.Stat(opts.TreePath); err == nil {
		keyOpts.ModTime = info.ModTime().Unix()
		keyOpts.Size = info.Size()
	}
	cacheKey := r.Keyer.TreeKey(opts.TreePath, keyOpts)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			t, err := tree.UnmarshalTree(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				observability.Pipeline().OnLoadComplete(ctx, source, len(t.People), time.Since(start), nil)
				return t, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "tree")

	t, err := tree.ReadTreeFile(opts.TreePath)
	observability.Pipeline().OnLoadComplete(ctx, source, len(t.People), time.Since(start), err)
	if err != nil {
		return tree.Tree{}, false, err
	}

	// Cache the result
	if data, err := tree.MarshalTree(t); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTree)
		observability.Cache().OnCacheSet(ctx, "tree", len(data))
	}

	return t, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (tree.Tree, error) {
	t, _, err := r.LoadWithCacheInfo(ctx, opts)
	return t, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, t tree.Tree, opts Options) (tree.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return tree.Layout{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	treeData, _ := tree.MarshalTree(t)
	treeHash := cache.Hash(treeData)
	cacheKey := r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts())

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.ChartType, opts.RootID)

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := tree.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			observability.Pipeline().OnLayoutComplete(ctx, opts.ChartType, time.Since(start), nil)
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	layout, err := ComputeLayout(t, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.ChartType, time.Since(start), err)
	if err != nil {
		return tree.Layout{}, false, err
	}

	// Cache the result
	if data, err := tree.MarshalLayout(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, t tree.Tree, opts Options) (tree.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, t, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l tree.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := tree.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l tree.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
