package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
)

type pointEntryRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	Delta     int       `db:"delta"`
	Reason    string    `db:"reason"`
	Ref       string    `db:"ref"`
	CreatedAt time.Time `db:"created_at"`
}

func (r pointEntryRow) unrow() reward.PointEntry {
	return reward.PointEntry{
		ID:        r.ID,
		StudentID: r.StudentID,
		Delta:     r.Delta,
		Reason:    r.Reason,
		Ref:       r.Ref,
		CreatedAt: r.CreatedAt,
	}
}

type redemptionRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	RewardID  string    `db:"reward_id"`
	Cost      int       `db:"cost"`
	CreatedAt time.Time `db:"created_at"`
}

func (r redemptionRow) unrow() reward.Redemption {
	return reward.Redemption{
		ID:         r.ID,
		StudentID:  r.StudentID,
		RewardID:   r.RewardID,
		Cost:       r.Cost,
		RedeemedAt: r.CreatedAt,
	}
}

type earnedAchievementRow struct {
	StudentID     string    `db:"student_id"`
	AchievementID string    `db:"achievement_id"`
	EarnedAt      time.Time `db:"earned_at"`
}

// rewardRepository keeps the ledger in the point_entry table and the running
// balance on the student row.
type rewardRepository struct {
	db *sqlx.DB
}

var _ reward.Repository = (*rewardRepository)(nil) // interface compliance check

func NewRewardRepository(db *sqlx.DB) *rewardRepository {
	return &rewardRepository{db: db}
}

func (repo rewardRepository) CreatePointEntry(ctx context.Context, e reward.PointEntry) (reward.PointEntry, error) {
	e.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO point_entry (id, student_id, delta, reason, ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.StudentID, e.Delta, e.Reason, e.Ref, e.CreatedAt.UTC())
	if err != nil {
		return reward.PointEntry{}, errors.Wrap(err, "inserting point entry")
	}
	return e, nil
}

// QueryPointEntries returns the ledger newest first.
func (repo rewardRepository) QueryPointEntries(ctx context.Context, studentID string, p core.Pagination) ([]reward.PointEntry, error) {
	query := `SELECT * FROM point_entry WHERE student_id = $1 ORDER BY created_at DESC` + limitOffset(p)
	var rows []pointEntryRow
	if err := repo.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, errors.Wrap(err, "querying point entries")
	}
	entries := make([]reward.PointEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.unrow())
	}
	return entries, nil
}

func (repo rewardRepository) GetPointsBalance(ctx context.Context, studentID string) (int, error) {
	var balance int
	err := repo.db.GetContext(ctx, &balance, `SELECT points_balance FROM student WHERE id = $1`, studentID)
	if err == sql.ErrNoRows {
		return 0, student.ErrNotFound
	}
	if err != nil {
		return 0, errors.Wrap(err, "finding points balance")
	}
	return balance, nil
}

func (repo rewardRepository) AdjustPointsBalance(ctx context.Context, studentID string, delta int) (int, error) {
	var balance int
	err := repo.db.GetContext(ctx, &balance, `
		UPDATE student SET points_balance = points_balance + $1 WHERE id = $2
		RETURNING points_balance`, delta, studentID)
	if err == sql.ErrNoRows {
		return 0, student.ErrNotFound
	}
	if err != nil {
		return 0, errors.Wrap(err, "adjusting points balance")
	}
	return balance, nil
}

func (repo rewardRepository) GetLifetimeEarned(ctx context.Context, studentID string) (int, error) {
	var sum int
	err := repo.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(delta), 0) FROM point_entry WHERE student_id = $1 AND delta > 0`, studentID)
	if err != nil {
		return 0, errors.Wrap(err, "summing lifetime points")
	}
	return sum, nil
}

func (repo rewardRepository) GetPointsEarnedSince(ctx context.Context, studentID string, since time.Time) (int, error) {
	var sum int
	err := repo.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(delta), 0) FROM point_entry
		WHERE student_id = $1 AND delta > 0 AND created_at >= $2`, studentID, since.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "summing points")
	}
	return sum, nil
}

func (repo rewardRepository) CreateRedemption(ctx context.Context, red reward.Redemption) (reward.Redemption, error) {
	red.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO redemption (id, student_id, reward_id, cost, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		red.ID, red.StudentID, red.RewardID, red.Cost, red.RedeemedAt.UTC())
	if err != nil {
		return reward.Redemption{}, errors.Wrap(err, "inserting redemption")
	}
	return red, nil
}

func (repo rewardRepository) QueryRedemptions(ctx context.Context, studentID string) ([]reward.Redemption, error) {
	var rows []redemptionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM redemption WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying redemptions")
	}
	reds := make([]reward.Redemption, 0, len(rows))
	for _, row := range rows {
		reds = append(reds, row.unrow())
	}
	return reds, nil
}

func (repo rewardRepository) CreateEarnedAchievement(ctx context.Context, ea reward.EarnedAchievement) (reward.EarnedAchievement, error) {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO earned_achievement (student_id, achievement_id, earned_at)
		VALUES ($1, $2, $3)`,
		ea.StudentID, ea.AchievementID, ea.EarnedAt.UTC())
	if err != nil {
		return reward.EarnedAchievement{}, errors.Wrap(err, "inserting earned achievement")
	}
	return ea, nil
}

func (repo rewardRepository) QueryEarnedAchievements(ctx context.Context, studentID string) ([]reward.EarnedAchievement, error) {
	var rows []earnedAchievementRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM earned_achievement WHERE student_id = $1 ORDER BY earned_at`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying earned achievements")
	}
	eas := make([]reward.EarnedAchievement, 0, len(rows))
	for _, row := range rows {
		eas = append(eas, reward.EarnedAchievement{
			StudentID:     row.StudentID,
			AchievementID: row.AchievementID,
			EarnedAt:      row.EarnedAt,
		})
	}
	return eas, nil
}
