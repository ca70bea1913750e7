package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Registry tracks which users currently hold a live socket, keyed by user id.
// The notifier consults it to decide between a push and a queued delivery.
type Registry interface {
	Add(ctx context.Context, userID uint64) error
	Remove(ctx context.Context, userID uint64) error
	Online(ctx context.Context, userID uint64) (bool, error)
}

const keyPrefix = "presence:user:"

// Entries expire on their own so a crashed gateway cannot leave users
// permanently "online".
const presenceTTL = 90 * time.Second

type redisRegistry struct {
	client *redis.Client
}

// NewRedisRegistry returns a Registry backed by per-user redis keys.
func NewRedisRegistry(client *redis.Client) Registry {
	return &redisRegistry{client: client}
}

func (r *redisRegistry) key(userID uint64) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}

func (r *redisRegistry) Add(ctx context.Context, userID uint64) error {
	return r.client.Set(ctx, r.key(userID), 1, presenceTTL).Err()
}

func (r *redisRegistry) Remove(ctx context.Context, userID uint64) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}

func (r *redisRegistry) Online(ctx context.Context, userID uint64) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
