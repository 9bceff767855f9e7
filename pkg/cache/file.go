package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache persists entries under a directory, one file per entry,
// grouped by key family so trees, layouts and artifacts land in
// separate subdirectories:
//
//	<dir>/tree/<digest>.bin
//	<dir>/layout/<digest>.bin
//	<dir>/artifact/<digest>.bin
//
// Each file starts with an 8-byte big-endian expiry in unix nanoseconds
// (zero for no expiry) followed by the raw payload. Expired entries are
// removed lazily on read; "rootline cache clear" sweeps the rest.
type FileCache struct {
	dir string
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

const expiryHeaderLen = 8

func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < expiryHeaderLen {
		// Truncated entry, drop it
		_ = os.Remove(path)
		return nil, false, nil
	}
	expiry := int64(binary.BigEndian.Uint64(raw[:expiryHeaderLen]))
	if expiry != 0 && time.Now().UnixNano() > expiry {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[expiryHeaderLen:], true, nil
}

func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiry int64
	if ttl > 0 {
		expiry = time.Now().Add(ttl).UnixNano()
	}
	buf := make([]byte, expiryHeaderLen+len(data))
	binary.BigEndian.PutUint64(buf[:expiryHeaderLen], uint64(expiry))
	copy(buf[expiryHeaderLen:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *FileCache) Close() error {
	return nil
}

// path maps a key to its file. Keyer keys have the shape
// "<family>:<hex digest>"; the family becomes the subdirectory and the
// digest the filename. Anything else (scoped keys, ad-hoc keys) is
// hashed into a catch-all directory so no key can escape dir.
func (c *FileCache) path(key string) string {
	family, digest, ok := strings.Cut(key, ":")
	if !ok || !isKeyFamily(family) || !isHexDigest(digest) {
		family, digest = "misc", Hash([]byte(key))
	}
	return filepath.Join(c.dir, family, digest+".bin")
}

func isKeyFamily(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func isHexDigest(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

var _ Cache = (*FileCache)(nil)
