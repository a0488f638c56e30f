package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/playlearnspark/backend/core/homework"
)

// rateLimiter counts hits per key with a window-sized TTL set on the first
// hit. Keys already carry the UTC day, so the counter resets naturally.
type rateLimiter struct {
	client *redis.Client
}

var _ homework.RateLimiter = (*rateLimiter)(nil) // interface compliance check

func NewRateLimiter(client *redis.Client) *rateLimiter {
	return &rateLimiter{client: client}
}

func (rl *rateLimiter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = keyRateLimit + key

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return 0, errors.Wrap(err, "incrementing rate limit counter")
	}
	return incr.Val(), nil
}

func (rl *rateLimiter) Decr(ctx context.Context, key string) error {
	if err := rl.client.Decr(ctx, keyRateLimit+key).Err(); err != nil && err != redis.Nil {
		return errors.Wrap(err, "decrementing rate limit counter")
	}
	return nil
}
