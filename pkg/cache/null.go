package cache

import (
	"context"
	"time"
)

// NullCache discards writes and misses every read. It backs --no-cache
// runs so the pipeline never needs a nil check before a cache call.
type NullCache struct{}

// NewNullCache returns the no-op cache.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NullCache) Delete(context.Context, string) error {
	return nil
}

func (NullCache) Close() error {
	return nil
}

var _ Cache = NullCache{}
