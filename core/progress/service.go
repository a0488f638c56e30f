package progress

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/content"
	"github.com/playlearnspark/backend/core/reward"
)

var (
	// errors
	ErrUnknownActivity = errors.New("unknown activity")
)

type (
	Repository interface {
		CreateCompletion(ctx context.Context, c Completion) error
		HasCompletion(ctx context.Context, studentID, activityID string) (bool, error)
		QueryCompletions(ctx context.Context, studentID string) ([]Completion, error)
		CountCompletions(ctx context.Context, studentID string) (int, error)
		CountCompletionsSince(ctx context.Context, studentID string, since time.Time) (int, error)

		GetModuleLevel(ctx context.Context, studentID, module string) (ModuleLevel, bool, error)
		UpsertModuleLevel(ctx context.Context, ml ModuleLevel) (ModuleLevel, error)
		QueryModuleLevels(ctx context.Context, studentID string) ([]ModuleLevel, error)

		// Streaks live on the student row.
		GetStreak(ctx context.Context, studentID string) (Streak, error)
		SetStreak(ctx context.Context, studentID string, s Streak) error
		// ResetLapsedStreaks zeroes running streaks whose last active day
		// is before `activeOn` and reports how many were reset.
		ResetLapsedStreaks(ctx context.Context, activeOn time.Time) (int64, error)
	}

	Service struct {
		repo    Repository
		rewards *reward.Service
	}
)

func NewService(repo Repository, rewards *reward.Service) *Service {
	return &Service{repo: repo, rewards: rewards}
}

// Complete records a catalog entry as done and applies every side effect:
// module progress, level unlocks, the daily streak and point awards.
// Completing an already-completed entry is a no-op and awards nothing.
func (svc *Service) Complete(ctx context.Context, ca CompleteActivity) (CompletionResult, error) {
	ref, ok := content.LookupActivity(ca.ActivityID)
	if !ok {
		return CompletionResult{}, core.NewValidationError(ErrUnknownActivity,
			core.FieldError{Field: "activity_id", Error: ErrUnknownActivity.Error()})
	}

	done, err := svc.repo.HasCompletion(ctx, ca.StudentID, ca.ActivityID)
	if err != nil {
		return CompletionResult{}, errors.Wrap(err, "checking completion")
	}
	if done {
		return svc.currentState(ctx, ca, ref)
	}

	now := time.Now().UTC()
	comp := Completion{
		StudentID:   ca.StudentID,
		ActivityID:  ca.ActivityID,
		Module:      ref.Module,
		Points:      ref.Points,
		CompletedAt: now,
	}
	if err := svc.repo.CreateCompletion(ctx, comp); err != nil {
		return CompletionResult{}, errors.Wrap(err, "recording completion")
	}

	level, unlocked, err := svc.advanceLevel(ctx, ca.StudentID, ref.Module, now)
	if err != nil {
		return CompletionResult{}, err
	}

	streak, err := svc.touchStreak(ctx, ca.StudentID, now)
	if err != nil {
		return CompletionResult{}, err
	}

	balance, newAchvs, err := svc.rewards.Award(ctx, ca.StudentID, ref.Points, reward.ReasonActivity, ca.ActivityID)
	if err != nil {
		return CompletionResult{}, errors.Wrap(err, "awarding points")
	}

	return CompletionResult{
		Completion:      comp,
		ModuleLevel:     level,
		LevelUnlocked:   unlocked,
		Streak:          streak,
		PointsAwarded:   ref.Points,
		PointsBalance:   balance,
		NewAchievements: newAchvs,
	}, nil
}

// currentState reports the standing progress for a repeat completion.
func (svc *Service) currentState(ctx context.Context, ca CompleteActivity, ref content.ActivityRef) (CompletionResult, error) {
	level, _, err := svc.repo.GetModuleLevel(ctx, ca.StudentID, ref.Module)
	if err != nil {
		return CompletionResult{}, err
	}
	streak, err := svc.repo.GetStreak(ctx, ca.StudentID)
	if err != nil {
		return CompletionResult{}, err
	}
	balance, err := svc.rewards.Balance(ctx, ca.StudentID)
	if err != nil {
		return CompletionResult{}, err
	}
	return CompletionResult{
		AlreadyCompleted: true,
		ModuleLevel:      level,
		Streak:           streak,
		PointsBalance:    balance,
	}, nil
}

func (svc *Service) advanceLevel(ctx context.Context, studentID, module string, now time.Time) (ModuleLevel, bool, error) {
	level, found, err := svc.repo.GetModuleLevel(ctx, studentID, module)
	if err != nil {
		return ModuleLevel{}, false, errors.Wrap(err, "loading module level")
	}
	if !found {
		level = ModuleLevel{StudentID: studentID, Module: module, Level: 1, UnlockedAt: now}
	}

	var unlocked bool
	level.Progress++
	if level.Level < MaxLevel && level.Progress >= LevelSize {
		level.Level++
		level.Progress -= LevelSize
		level.UnlockedAt = now
		unlocked = true
	}

	level, err = svc.repo.UpsertModuleLevel(ctx, level)
	if err != nil {
		return ModuleLevel{}, false, errors.Wrap(err, "saving module level")
	}
	return level, unlocked, nil
}

// touchStreak keeps the daily streak: consecutive active days increment it,
// a gap restarts it at 1, multiple completions a day count once.
func (svc *Service) touchStreak(ctx context.Context, studentID string, now time.Time) (Streak, error) {
	streak, err := svc.repo.GetStreak(ctx, studentID)
	if err != nil {
		return Streak{}, errors.Wrap(err, "loading streak")
	}

	today := DateOf(now)
	switch {
	case streak.LastDay.Equal(today):
		return streak, nil
	case streak.LastDay.Equal(today.AddDate(0, 0, -1)):
		streak.Current++
	default:
		streak.Current = 1
	}
	if streak.Current > streak.Longest {
		streak.Longest = streak.Current
	}
	streak.LastDay = today

	if err := svc.repo.SetStreak(ctx, studentID, streak); err != nil {
		return Streak{}, errors.Wrap(err, "saving streak")
	}
	return streak, nil
}

func (svc *Service) Overview(ctx context.Context, studentID string) (Overview, error) {
	comps, err := svc.repo.QueryCompletions(ctx, studentID)
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying completions")
	}
	levels, err := svc.repo.QueryModuleLevels(ctx, studentID)
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying module levels")
	}
	streak, err := svc.repo.GetStreak(ctx, studentID)
	if err != nil {
		return Overview{}, errors.Wrap(err, "loading streak")
	}

	ids := make([]string, 0, len(comps))
	for _, c := range comps {
		ids = append(ids, c.ActivityID)
	}
	return Overview{
		StudentID:      studentID,
		TotalCompleted: len(comps),
		CompletedIDs:   ids,
		Modules:        levels,
		Streak:         streak,
	}, nil
}

func (svc *Service) CountCompletedSince(ctx context.Context, studentID string, since time.Time) (int, error) {
	return svc.repo.CountCompletionsSince(ctx, studentID, since)
}

// LapseStreaks resets streaks that were not kept alive yesterday.
// Meant to run shortly after midnight UTC.
func (svc *Service) LapseStreaks(ctx context.Context) (int64, error) {
	yesterday := DateOf(time.Now().UTC()).AddDate(0, 0, -1)
	return svc.repo.ResetLapsedStreaks(ctx, yesterday)
}

// DateOf truncates `t` to its UTC date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
