package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple trees or users can
// share one backend without key collisions.
//
// Example usage:
//
//	// Per-tree keys on a shared Redis
//	treeKeyer := NewScopedKeyer(NewDefaultKeyer(), "tree:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TreeKey generates a prefixed key for tree load caching.
func (k *ScopedKeyer) TreeKey(source string, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(source, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(treeHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
