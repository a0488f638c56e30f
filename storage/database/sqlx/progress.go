package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
)

type completionRow struct {
	StudentID   string    `db:"student_id"`
	ActivityID  string    `db:"activity_id"`
	Module      string    `db:"module"`
	Points      int       `db:"points"`
	CompletedAt time.Time `db:"completed_at"`
}

func (r completionRow) unrow() progress.Completion {
	return progress.Completion{
		StudentID:   r.StudentID,
		ActivityID:  r.ActivityID,
		Module:      r.Module,
		Points:      r.Points,
		CompletedAt: r.CompletedAt,
	}
}

type moduleLevelRow struct {
	StudentID  string    `db:"student_id"`
	Module     string    `db:"module"`
	Level      int       `db:"level"`
	Progress   int       `db:"progress"`
	UnlockedAt time.Time `db:"unlocked_at"`
}

func (r moduleLevelRow) unrow() progress.ModuleLevel {
	return progress.ModuleLevel{
		StudentID:  r.StudentID,
		Module:     r.Module,
		Level:      r.Level,
		Progress:   r.Progress,
		UnlockedAt: r.UnlockedAt,
	}
}

// progressRepository spans two tables: completions and module levels in the
// progress tables, streaks on the student row.
type progressRepository struct {
	db *sqlx.DB
}

var (
	_ progress.Repository = (*progressRepository)(nil) // interface compliance check
	_ reward.StatsSource  = (*progressRepository)(nil)
)

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo progressRepository) CreateCompletion(ctx context.Context, c progress.Completion) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO completed_activity (student_id, activity_id, module, points, completed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.StudentID, c.ActivityID, c.Module, c.Points, c.CompletedAt.UTC())
	if err != nil {
		return errors.Wrap(err, "inserting completion")
	}
	return nil
}

func (repo progressRepository) HasCompletion(ctx context.Context, studentID, activityID string) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM completed_activity WHERE student_id = $1 AND activity_id = $2)`,
		studentID, activityID)
	if err != nil {
		return false, errors.Wrap(err, "checking completion")
	}
	return exists, nil
}

func (repo progressRepository) QueryCompletions(ctx context.Context, studentID string) ([]progress.Completion, error) {
	var rows []completionRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM completed_activity WHERE student_id = $1 ORDER BY completed_at`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying completions")
	}
	comps := make([]progress.Completion, 0, len(rows))
	for _, row := range rows {
		comps = append(comps, row.unrow())
	}
	return comps, nil
}

func (repo progressRepository) CountCompletions(ctx context.Context, studentID string) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM completed_activity WHERE student_id = $1`, studentID)
	if err != nil {
		return 0, errors.Wrap(err, "counting completions")
	}
	return count, nil
}

func (repo progressRepository) CountCompletionsSince(ctx context.Context, studentID string, since time.Time) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM completed_activity WHERE student_id = $1 AND completed_at >= $2`,
		studentID, since.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "counting completions")
	}
	return count, nil
}

func (repo progressRepository) GetModuleLevel(ctx context.Context, studentID, module string) (progress.ModuleLevel, bool, error) {
	var row moduleLevelRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM module_level WHERE student_id = $1 AND module = $2`, studentID, module)
	if err == sql.ErrNoRows {
		return progress.ModuleLevel{}, false, nil
	}
	if err != nil {
		return progress.ModuleLevel{}, false, errors.Wrap(err, "finding module level")
	}
	return row.unrow(), true, nil
}

func (repo progressRepository) UpsertModuleLevel(ctx context.Context, ml progress.ModuleLevel) (progress.ModuleLevel, error) {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO module_level (student_id, module, level, progress, unlocked_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, module)
		DO UPDATE SET level = EXCLUDED.level, progress = EXCLUDED.progress, unlocked_at = EXCLUDED.unlocked_at`,
		ml.StudentID, ml.Module, ml.Level, ml.Progress, ml.UnlockedAt.UTC())
	if err != nil {
		return progress.ModuleLevel{}, errors.Wrap(err, "upserting module level")
	}
	return ml, nil
}

func (repo progressRepository) QueryModuleLevels(ctx context.Context, studentID string) ([]progress.ModuleLevel, error) {
	var rows []moduleLevelRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM module_level WHERE student_id = $1 ORDER BY module`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying module levels")
	}
	mls := make([]progress.ModuleLevel, 0, len(rows))
	for _, row := range rows {
		mls = append(mls, row.unrow())
	}
	return mls, nil
}

func (repo progressRepository) GetStreak(ctx context.Context, studentID string) (progress.Streak, error) {
	var row struct {
		Current int       `db:"streak_current"`
		Longest int       `db:"streak_longest"`
		LastDay null.Time `db:"streak_last_day"`
	}
	err := repo.db.GetContext(ctx, &row,
		`SELECT streak_current, streak_longest, streak_last_day FROM student WHERE id = $1`, studentID)
	if err == sql.ErrNoRows {
		return progress.Streak{}, student.ErrNotFound
	}
	if err != nil {
		return progress.Streak{}, errors.Wrap(err, "finding streak")
	}
	return progress.Streak{Current: row.Current, Longest: row.Longest, LastDay: row.LastDay.Time}, nil
}

func (repo progressRepository) SetStreak(ctx context.Context, studentID string, s progress.Streak) error {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE student SET streak_current = $1, streak_longest = $2, streak_last_day = $3 WHERE id = $4`,
		s.Current, s.Longest, null.NewTime(s.LastDay.UTC(), !s.LastDay.IsZero()), studentID)
	if err != nil {
		return errors.Wrap(err, "setting streak")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo progressRepository) ResetLapsedStreaks(ctx context.Context, activeOn time.Time) (int64, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE student SET streak_current = 0
		WHERE streak_current > 0 AND streak_last_day < $1`, activeOn.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "resetting lapsed streaks")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "resetting lapsed streaks")
	}
	return n, nil
}

// StreakCounts feeds achievement checks.
func (repo progressRepository) StreakCounts(ctx context.Context, studentID string) (current, longest int, err error) {
	s, err := repo.GetStreak(ctx, studentID)
	if err != nil {
		return 0, 0, err
	}
	return s.Current, s.Longest, nil
}
