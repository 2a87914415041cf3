package cache

import (
	"context"
	"time"
)

// Tiered checks a fast local cache before a shared one. Hits in the shared
// tier are copied into the local tier.
type Tiered struct {
	l1    Cache
	l2    Cache
	l1TTL time.Duration
}

// NewTiered combines l1 and l2. l2 may be nil. l1TTL bounds how long a
// value copied up from l2 stays local (zero means DefaultTTL).
func NewTiered(l1, l2 Cache, l1TTL time.Duration) *Tiered {
	return &Tiered{l1: l1, l2: l2, l1TTL: l1TTL}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := t.l1.Get(ctx, key); ok {
		return v, true
	}
	if t.l2 == nil {
		return nil, false
	}
	v, ok := t.l2.Get(ctx, key)
	if !ok {
		return nil, false
	}
	_ = t.l1.Set(ctx, key, v, t.l1TTL)
	return v, true
}

// Set writes both tiers. The local write always succeeds, so only the
// shared tier's error is returned.
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	l1TTL := ttl
	if t.l1TTL > 0 && (l1TTL <= 0 || t.l1TTL < l1TTL) {
		l1TTL = t.l1TTL
	}
	_ = t.l1.Set(ctx, key, value, l1TTL)
	if t.l2 == nil {
		return nil
	}
	return t.l2.Set(ctx, key, value, ttl)
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	_ = t.l1.Delete(ctx, key)
	if t.l2 == nil {
		return nil
	}
	return t.l2.Delete(ctx, key)
}

var _ Cache = (*Tiered)(nil)
