// Package cache provides pluggable byte caches and cache key derivation
// for the chart pipeline.
//
// The layout engines are pure functions, so their results are memoized
// by the calling layer keyed on input identity: tree content hash, root,
// chart type and geometry. Backends cover local CLI use (FileCache,
// MemoryCache), shared deployments (RedisCache) and disabled caching
// (NullCache).
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage.
const (
	TTLTree     = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TreeKeyOpts carries freshness information for tree load caching.
type TreeKeyOpts struct {
	ModTime int64 // source file modification time, unix seconds
	Size    int64 // source file size in bytes
}

// LayoutKeyOpts identifies one layout computation.
type LayoutKeyOpts struct {
	ChartType   string
	RootID      string
	Filters     []string
	CurrentYear int
	Geometry    any // engine config struct for the chart type
}

// ArtifactKeyOpts identifies one rendered artifact.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// TreeKey keys a normalized tree by its source and freshness.
	TreeKey(source string, opts TreeKeyOpts) string

	// LayoutKey keys a layout by the tree content hash and options.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout hash and format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TreeKey generates a key for tree load caching.
func (k *DefaultKeyer) TreeKey(source string, opts TreeKeyOpts) string {
	return hashKey("tree", source, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
