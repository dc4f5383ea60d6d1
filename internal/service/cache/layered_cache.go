package cache

import (
	"context"
	"time"
)

// defaultL1TTL bounds how long a payload read back from L2 stays in memory.
const defaultL1TTL = 10 * time.Minute

// LayeredCache is a two-level cache (L1: memory, L2: any shared backend).
type LayeredCache struct {
	mem    *TTLCache
	shared BytesCache
	l1TTL  time.Duration
}

// NewLayeredCache wraps shared with an in-process L1. A non-positive l1TTL
// falls back to ten minutes.
func NewLayeredCache(shared BytesCache, l1TTL time.Duration) *LayeredCache {
	if l1TTL <= 0 {
		l1TTL = defaultL1TTL
	}
	return &LayeredCache{mem: NewTTLCache(), shared: shared, l1TTL: l1TTL}
}

func (lc *LayeredCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	// L1: Try memory first
	if v, ok, _ := lc.mem.GetBytes(ctx, key); ok {
		return v, true, nil
	}

	// L2
	v, ok, err := lc.shared.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	// Store in memory for next time
	_ = lc.mem.SetBytes(ctx, key, v, lc.l1TTL)
	return v, true, nil
}

func (lc *LayeredCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Write-through: shared first, then memory
	if err := lc.shared.SetBytes(ctx, key, value, ttl); err != nil {
		return err
	}
	l1 := lc.l1TTL
	if ttl > 0 && ttl < l1 {
		l1 = ttl
	}
	return lc.mem.SetBytes(ctx, key, value, l1)
}

// Ping reports the health of the shared layer when it can be pinged.
func (lc *LayeredCache) Ping(ctx context.Context) error {
	if p, ok := lc.shared.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Sweep drops expired L1 entries.
func (lc *LayeredCache) Sweep() int { return lc.mem.Sweep() }
