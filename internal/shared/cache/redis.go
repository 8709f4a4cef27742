package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implementa Store sobre um cliente go-redis.
type Redis struct{ R *redis.Client }

func NewRedis(r *redis.Client) *Redis { return &Redis{R: r} }

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.R.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.R.Set(ctx, key, value, ttl).Err()
}
