package cache

import (
	"context"
	"time"
)

// MultiLevelCache layers a local cache (L1) in front of a remote one (L2).
type MultiLevelCache struct {
	local  Cache
	remote Cache
}

func NewMultiLevelCache(local, remote Cache) *MultiLevelCache {
	return &MultiLevelCache{
		local:  local,
		remote: remote,
	}
}

func (m *MultiLevelCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	// L1 gets half the TTL so it cannot outlive the authoritative L2 entry.
	_ = m.local.Set(ctx, key, value, ttl/2)
	return m.remote.Set(ctx, key, value, ttl)
}

func (m *MultiLevelCache) Get(ctx context.Context, key string, target interface{}) error {
	if err := m.local.Get(ctx, key, target); err == nil {
		return nil // L1 hit
	}

	if err := m.remote.Get(ctx, key, target); err == nil {
		// L2 hit, refill L1 with a short TTL
		_ = m.local.Set(ctx, key, target, time.Minute)
		return nil
	}

	return ErrCacheMiss
}

func (m *MultiLevelCache) Delete(ctx context.Context, key string) error {
	_ = m.local.Delete(ctx, key)
	return m.remote.Delete(ctx, key)
}
