// Package cache implements the redis-backed stores: game leaderboards,
// guest sessions and rolling rate-limit counters. Everything kept here is
// rebuildable or ephemeral; postgres stays the source of truth.
package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/playlearnspark/backend/core"
)

// key prefixes
const (
	keyLeaderboard  = "leaderboard:"   // + gameID -> ZSET studentID/score
	keyGuestSession = "guest:session:" // + sessionID -> JSON blob
	keyRateLimit    = "ratelimit:"     // + caller key -> counter
)

// Open connects to redis and verifies the connection.
func Open(conf *core.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr(),
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "pinging redis")
	}
	return client, nil
}
