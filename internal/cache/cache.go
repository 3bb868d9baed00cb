package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// NoTTL marks an entry that lives for the process lifetime (and is never
// considered expired on disk). Used for pure-local detector results, which
// are deterministic given identical input.
const NoTTL time.Duration = -1

// Cache defines the result cache contract. Reads are side-effect free
// beyond lazy expiry; concurrent writes to the same key may race
// last-writer-wins since entries are derived deterministically from the
// same input.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Fingerprint derives a stable cache key from the content bytes, the
// detector-set ID, and the provider that produced the result (empty for
// local-only results).
func Fingerprint(content []byte, detectorSetID string, provider string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{'|'})
	h.Write([]byte(detectorSetID))
	h.Write([]byte{'|'})
	h.Write([]byte(provider))
	return "credengine:v1:" + hex.EncodeToString(h.Sum(nil))
}
