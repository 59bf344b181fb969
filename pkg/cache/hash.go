package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey derives a cache key from a namespace prefix and the values that
// determine the cached artifact (layout hash, cols, compaction, breakpoint).
// The format is prefix:hex(sha256(json(parts))); the digest is kept in full
// so near-identical layouts never share a key.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 digest of data. Serialized layouts are hashed
// with this to form the content-addressed part of their keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
