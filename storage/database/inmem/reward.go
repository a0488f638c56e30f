package inmemdb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
)

// rewardRepository keeps the ledger in the reward table and the running
// balance on the student row.
type rewardRepository struct {
	db *DB
}

var _ reward.Repository = (*rewardRepository)(nil) // interface compliance check

func NewRewardRepository(db *DB) *rewardRepository {
	return &rewardRepository{db: db}
}

func (repo *rewardRepository) CreatePointEntry(ctx context.Context, e reward.PointEntry) (reward.PointEntry, error) {
	repo.db.reward.mutex.Lock()
	defer repo.db.reward.mutex.Unlock()

	e.ID = uuid.New().String()
	repo.db.reward.entries[e.StudentID] = append(repo.db.reward.entries[e.StudentID], e)
	return e, nil
}

// QueryPointEntries returns the ledger newest first.
func (repo *rewardRepository) QueryPointEntries(ctx context.Context, studentID string, p core.Pagination) ([]reward.PointEntry, error) {
	repo.db.reward.mutex.RLock()
	defer repo.db.reward.mutex.RUnlock()

	all := repo.db.reward.entries[studentID]
	entries := make([]reward.PointEntry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		entries = append(entries, all[i])
	}
	return paginateEntries(entries, p), nil
}

func (repo *rewardRepository) GetPointsBalance(ctx context.Context, studentID string) (int, error) {
	repo.db.student.mutex.RLock()
	defer repo.db.student.mutex.RUnlock()

	std, ok := repo.db.student.t[studentID]
	if !ok {
		return 0, student.ErrNotFound
	}
	return std.PointsBalance, nil
}

func (repo *rewardRepository) AdjustPointsBalance(ctx context.Context, studentID string, delta int) (int, error) {
	repo.db.student.mutex.Lock()
	defer repo.db.student.mutex.Unlock()

	std, ok := repo.db.student.t[studentID]
	if !ok {
		return 0, student.ErrNotFound
	}
	std.PointsBalance += delta
	return std.PointsBalance, nil
}

func (repo *rewardRepository) GetLifetimeEarned(ctx context.Context, studentID string) (int, error) {
	repo.db.reward.mutex.RLock()
	defer repo.db.reward.mutex.RUnlock()

	var sum int
	for _, e := range repo.db.reward.entries[studentID] {
		if e.Delta > 0 {
			sum += e.Delta
		}
	}
	return sum, nil
}

func (repo *rewardRepository) GetPointsEarnedSince(ctx context.Context, studentID string, since time.Time) (int, error) {
	repo.db.reward.mutex.RLock()
	defer repo.db.reward.mutex.RUnlock()

	var sum int
	for _, e := range repo.db.reward.entries[studentID] {
		if e.Delta > 0 && !e.CreatedAt.Before(since) {
			sum += e.Delta
		}
	}
	return sum, nil
}

func (repo *rewardRepository) CreateRedemption(ctx context.Context, red reward.Redemption) (reward.Redemption, error) {
	repo.db.reward.mutex.Lock()
	defer repo.db.reward.mutex.Unlock()

	red.ID = uuid.New().String()
	repo.db.reward.redemptions[red.StudentID] = append(repo.db.reward.redemptions[red.StudentID], red)
	return red, nil
}

func (repo *rewardRepository) QueryRedemptions(ctx context.Context, studentID string) ([]reward.Redemption, error) {
	repo.db.reward.mutex.RLock()
	defer repo.db.reward.mutex.RUnlock()

	all := repo.db.reward.redemptions[studentID]
	reds := make([]reward.Redemption, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		reds = append(reds, all[i])
	}
	return reds, nil
}

func (repo *rewardRepository) CreateEarnedAchievement(ctx context.Context, ea reward.EarnedAchievement) (reward.EarnedAchievement, error) {
	repo.db.reward.mutex.Lock()
	defer repo.db.reward.mutex.Unlock()

	repo.db.reward.achievements[ea.StudentID] = append(repo.db.reward.achievements[ea.StudentID], ea)
	return ea, nil
}

func (repo *rewardRepository) QueryEarnedAchievements(ctx context.Context, studentID string) ([]reward.EarnedAchievement, error) {
	repo.db.reward.mutex.RLock()
	defer repo.db.reward.mutex.RUnlock()

	all := repo.db.reward.achievements[studentID]
	eas := make([]reward.EarnedAchievement, 0, len(all))
	eas = append(eas, all...)
	return eas, nil
}

func paginateEntries(entries []reward.PointEntry, p core.Pagination) []reward.PointEntry {
	if p.IsZero() {
		return entries
	}
	if p.Offset >= len(entries) {
		return []reward.PointEntry{}
	}
	entries = entries[p.Offset:]
	if p.Limit > 0 && p.Limit < len(entries) {
		entries = entries[:p.Limit]
	}
	return entries
}
