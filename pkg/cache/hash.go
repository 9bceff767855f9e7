package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the full hex SHA-256 digest of data. Tree and layout
// content hashes use this directly; the full digest keeps artifact keys
// collision-free across large trees.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey derives a key of the form "<family>:<digest>" from arbitrary
// components. Components are JSON-marshaled before hashing so the key
// option structs can participate without custom encoding.
func hashKey(family string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return family + ":" + Hash(data)
}
