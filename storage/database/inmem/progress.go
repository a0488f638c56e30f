package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
)

// progressRepository spans two tables: completions and module levels in the
// progress table, streaks on the student row.
type progressRepository struct {
	db *DB
}

var (
	_ progress.Repository = (*progressRepository)(nil) // interface compliance check
	_ reward.StatsSource  = (*progressRepository)(nil)
)

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) CreateCompletion(ctx context.Context, c progress.Completion) error {
	repo.db.progress.mutex.Lock()
	defer repo.db.progress.mutex.Unlock()

	byActivity, ok := repo.db.progress.completions[c.StudentID]
	if !ok {
		byActivity = make(map[string]progress.Completion)
		repo.db.progress.completions[c.StudentID] = byActivity
	}
	byActivity[c.ActivityID] = c
	return nil
}

func (repo *progressRepository) HasCompletion(ctx context.Context, studentID, activityID string) (bool, error) {
	repo.db.progress.mutex.RLock()
	defer repo.db.progress.mutex.RUnlock()

	_, ok := repo.db.progress.completions[studentID][activityID]
	return ok, nil
}

func (repo *progressRepository) QueryCompletions(ctx context.Context, studentID string) ([]progress.Completion, error) {
	repo.db.progress.mutex.RLock()
	defer repo.db.progress.mutex.RUnlock()

	comps := make([]progress.Completion, 0, len(repo.db.progress.completions[studentID]))
	for _, c := range repo.db.progress.completions[studentID] {
		comps = append(comps, c)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i].CompletedAt.Before(comps[j].CompletedAt) })
	return comps, nil
}

func (repo *progressRepository) CountCompletions(ctx context.Context, studentID string) (int, error) {
	repo.db.progress.mutex.RLock()
	defer repo.db.progress.mutex.RUnlock()
	return len(repo.db.progress.completions[studentID]), nil
}

func (repo *progressRepository) CountCompletionsSince(ctx context.Context, studentID string, since time.Time) (int, error) {
	repo.db.progress.mutex.RLock()
	defer repo.db.progress.mutex.RUnlock()

	var count int
	for _, c := range repo.db.progress.completions[studentID] {
		if !c.CompletedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (repo *progressRepository) GetModuleLevel(ctx context.Context, studentID, module string) (progress.ModuleLevel, bool, error) {
	repo.db.progress.mutex.RLock()
	defer repo.db.progress.mutex.RUnlock()

	ml, ok := repo.db.progress.moduleLevels[studentID][module]
	return ml, ok, nil
}

func (repo *progressRepository) UpsertModuleLevel(ctx context.Context, ml progress.ModuleLevel) (progress.ModuleLevel, error) {
	repo.db.progress.mutex.Lock()
	defer repo.db.progress.mutex.Unlock()

	byModule, ok := repo.db.progress.moduleLevels[ml.StudentID]
	if !ok {
		byModule = make(map[string]progress.ModuleLevel)
		repo.db.progress.moduleLevels[ml.StudentID] = byModule
	}
	byModule[ml.Module] = ml
	return ml, nil
}

func (repo *progressRepository) QueryModuleLevels(ctx context.Context, studentID string) ([]progress.ModuleLevel, error) {
	repo.db.progress.mutex.RLock()
	defer repo.db.progress.mutex.RUnlock()

	mls := make([]progress.ModuleLevel, 0, len(repo.db.progress.moduleLevels[studentID]))
	for _, ml := range repo.db.progress.moduleLevels[studentID] {
		mls = append(mls, ml)
	}
	sort.Slice(mls, func(i, j int) bool { return mls[i].Module < mls[j].Module })
	return mls, nil
}

func (repo *progressRepository) GetStreak(ctx context.Context, studentID string) (progress.Streak, error) {
	repo.db.student.mutex.RLock()
	defer repo.db.student.mutex.RUnlock()

	std, ok := repo.db.student.t[studentID]
	if !ok {
		return progress.Streak{}, student.ErrNotFound
	}
	return progress.Streak{
		Current: std.StreakCurrent,
		Longest: std.StreakLongest,
		LastDay: std.StreakLastDay,
	}, nil
}

func (repo *progressRepository) SetStreak(ctx context.Context, studentID string, s progress.Streak) error {
	repo.db.student.mutex.Lock()
	defer repo.db.student.mutex.Unlock()

	std, ok := repo.db.student.t[studentID]
	if !ok {
		return student.ErrNotFound
	}
	std.StreakCurrent = s.Current
	std.StreakLongest = s.Longest
	std.StreakLastDay = s.LastDay
	return nil
}

func (repo *progressRepository) ResetLapsedStreaks(ctx context.Context, activeOn time.Time) (int64, error) {
	repo.db.student.mutex.Lock()
	defer repo.db.student.mutex.Unlock()

	var count int64
	for _, std := range repo.db.student.t {
		if std.StreakCurrent > 0 && std.StreakLastDay.Before(activeOn) {
			std.StreakCurrent = 0
			count++
		}
	}
	return count, nil
}

// StreakCounts feeds achievement checks.
func (repo *progressRepository) StreakCounts(ctx context.Context, studentID string) (current, longest int, err error) {
	s, err := repo.GetStreak(ctx, studentID)
	if err != nil {
		return 0, 0, err
	}
	return s.Current, s.Longest, nil
}
