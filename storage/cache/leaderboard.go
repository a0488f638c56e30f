package cache

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/playlearnspark/backend/core/game"
)

// leaderboard ranks per-game best scores in a sorted set, one ZSET per game.
// Rank lookups are O(log N); the set is rebuilt from postgres on a schedule
// so a flushed cache heals itself.
type leaderboard struct {
	client *redis.Client
}

var _ game.Leaderboard = (*leaderboard)(nil) // interface compliance check

func NewLeaderboard(client *redis.Client) *leaderboard {
	return &leaderboard{client: client}
}

// RecordScore keeps the member's best score; GT only updates upwards.
func (lb *leaderboard) RecordScore(ctx context.Context, gameID, studentID string, score int) error {
	err := lb.client.ZAddGT(ctx, keyLeaderboard+gameID, redis.Z{
		Score:  float64(score),
		Member: studentID,
	}).Err()
	return errors.Wrap(err, "recording leaderboard score")
}

func (lb *leaderboard) Top(ctx context.Context, gameID string, n int64) ([]game.LeaderboardEntry, error) {
	if n <= 0 {
		n = 10
	}
	zs, err := lb.client.ZRevRangeWithScores(ctx, keyLeaderboard+gameID, 0, n-1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "querying leaderboard")
	}

	entries := make([]game.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		studentID, _ := z.Member.(string)
		entries = append(entries, game.LeaderboardEntry{
			Rank:      i + 1,
			StudentID: studentID,
			Score:     int(z.Score),
		})
	}
	return entries, nil
}

// Rank reports the student's 1-based rank and score; (0, 0) when unranked.
func (lb *leaderboard) Rank(ctx context.Context, gameID, studentID string) (int, int, error) {
	key := keyLeaderboard + gameID
	rank, err := lb.client.ZRevRank(ctx, key, studentID).Result()
	if err == redis.Nil {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, errors.Wrap(err, "ranking student")
	}
	score, err := lb.client.ZScore(ctx, key, studentID).Result()
	if err != nil {
		return 0, 0, errors.Wrap(err, "scoring student")
	}
	return int(rank) + 1, int(score), nil
}
