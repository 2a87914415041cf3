// Package cache stores translation results in memory and, optionally, in
// Redis so repeated lookups skip the LLM.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DefaultTTL is used when a caller passes a zero TTL.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a string-keyed byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key. A zero ttl means DefaultTTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key if present.
	Delete(ctx context.Context, key string) error
}

// Key joins components with ':' and appends a short SHA-256 of the joined
// string, so free text (sentences, phrases) never leaks raw into Redis
// key space.
func Key(namespace string, components ...string) string {
	joined := strings.Join(components, "\x00")
	h := sha256.Sum256([]byte(joined))
	return namespace + ":" + hex.EncodeToString(h[:])[:32]
}
