package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent at every level.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the generic cache contract shared by all levels.
type Cache interface {
	// Set stores a value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get loads a value and unmarshals it into target.
	Get(ctx context.Context, key string, target interface{}) error
	// Delete removes a key.
	Delete(ctx context.Context, key string) error
}
