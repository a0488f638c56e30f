package reward

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
)

var (
	// errors
	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientPoints = errors.New("not enough points for this reward")
	ErrRewardUnavailable  = errors.New("this reward is not available right now")
)

type (
	// StatsSource feeds achievement checks with a student's learning stats.
	// The progress store satisfies it.
	StatsSource interface {
		CountCompletions(ctx context.Context, studentID string) (int, error)
		StreakCounts(ctx context.Context, studentID string) (current, longest int, err error)
	}

	Repository interface {
		CreatePointEntry(ctx context.Context, e PointEntry) (PointEntry, error)
		QueryPointEntries(ctx context.Context, studentID string, p core.Pagination) ([]PointEntry, error)
		GetPointsBalance(ctx context.Context, studentID string) (int, error)
		// AdjustPointsBalance adds delta to the balance and returns the new value.
		AdjustPointsBalance(ctx context.Context, studentID string, delta int) (int, error)
		// GetLifetimeEarned sums all positive ledger deltas.
		GetLifetimeEarned(ctx context.Context, studentID string) (int, error)
		GetPointsEarnedSince(ctx context.Context, studentID string, since time.Time) (int, error)

		CreateRedemption(ctx context.Context, red Redemption) (Redemption, error)
		QueryRedemptions(ctx context.Context, studentID string) ([]Redemption, error)

		CreateEarnedAchievement(ctx context.Context, ea EarnedAchievement) (EarnedAchievement, error)
		QueryEarnedAchievements(ctx context.Context, studentID string) ([]EarnedAchievement, error)
	}

	Service struct {
		repo  Repository
		stats StatsSource
	}
)

func NewService(repo Repository, stats StatsSource) *Service {
	return &Service{repo: repo, stats: stats}
}

// Award credits points to a student, records the ledger entry and grants any
// achievement whose threshold the award pushed the student past. It returns
// the new balance along with the freshly earned achievements.
func (svc *Service) Award(ctx context.Context, studentID string, points int, reason, ref string) (int, []Achievement, error) {
	balance, err := svc.repo.AdjustPointsBalance(ctx, studentID, points)
	if err != nil {
		return 0, nil, errors.Wrap(err, "adjusting balance")
	}
	_, err = svc.repo.CreatePointEntry(ctx, PointEntry{
		StudentID: studentID,
		Delta:     points,
		Reason:    reason,
		Ref:       ref,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return 0, nil, errors.Wrap(err, "recording point entry")
	}

	newAchvs, err := svc.evaluateAchievements(ctx, studentID)
	if err != nil {
		return 0, nil, err
	}
	return balance, newAchvs, nil
}

func (svc *Service) Balance(ctx context.Context, studentID string) (int, error) {
	return svc.repo.GetPointsBalance(ctx, studentID)
}

func (svc *Service) Ledger(ctx context.Context, studentID string, p core.Pagination) ([]PointEntry, error) {
	return svc.repo.QueryPointEntries(ctx, studentID, p)
}

func (svc *Service) PointsEarnedSince(ctx context.Context, studentID string, since time.Time) (int, error) {
	return svc.repo.GetPointsEarnedSince(ctx, studentID, since)
}

// Catalog lists the rewards a child of `age` can browse at time `at`.
// A zero age skips the age filter; an empty category matches all.
func (svc *Service) Catalog(age int, at time.Time, category Category) []Reward {
	season := CurrentSeason(at)
	res := make([]Reward, 0, len(Rewards))
	for _, r := range Rewards {
		if category != "" && r.Category != category {
			continue
		}
		if !r.forAge(age) || !r.inSeason(season) {
			continue
		}
		res = append(res, r)
	}
	return res
}

// Redeem trades points for a catalog reward. The reward must exist, be in
// season, suit the student's age and cost no more than the current balance.
func (svc *Service) Redeem(ctx context.Context, rr RedeemReward, age int) (Redemption, int, error) {
	rwd, ok := FindReward(rr.RewardID)
	if !ok {
		return Redemption{}, 0, core.NewValidationError(ErrRewardNotFound,
			core.FieldError{Field: "reward_id", Error: ErrRewardNotFound.Error()})
	}
	if !rwd.forAge(age) || !rwd.inSeason(CurrentSeason(time.Now())) {
		return Redemption{}, 0, core.NewValidationError(ErrRewardUnavailable,
			core.FieldError{Field: "reward_id", Error: ErrRewardUnavailable.Error()})
	}

	balance, err := svc.repo.GetPointsBalance(ctx, rr.StudentID)
	if err != nil {
		return Redemption{}, 0, errors.Wrap(err, "loading balance")
	}
	if balance < rwd.Cost {
		return Redemption{}, 0, core.NewValidationError(ErrInsufficientPoints)
	}

	now := time.Now().UTC()
	balance, err = svc.repo.AdjustPointsBalance(ctx, rr.StudentID, -rwd.Cost)
	if err != nil {
		return Redemption{}, 0, errors.Wrap(err, "adjusting balance")
	}
	_, err = svc.repo.CreatePointEntry(ctx, PointEntry{
		StudentID: rr.StudentID,
		Delta:     -rwd.Cost,
		Reason:    ReasonRedemption,
		Ref:       rwd.ID,
		CreatedAt: now,
	})
	if err != nil {
		return Redemption{}, 0, errors.Wrap(err, "recording point entry")
	}

	red, err := svc.repo.CreateRedemption(ctx, Redemption{
		StudentID:  rr.StudentID,
		RewardID:   rwd.ID,
		Cost:       rwd.Cost,
		RedeemedAt: now,
	})
	if err != nil {
		return Redemption{}, 0, errors.Wrap(err, "recording redemption")
	}
	return red, balance, nil
}

func (svc *Service) Redemptions(ctx context.Context, studentID string) ([]Redemption, error) {
	return svc.repo.QueryRedemptions(ctx, studentID)
}

func (svc *Service) EarnedAchievements(ctx context.Context, studentID string) ([]EarnedAchievement, error) {
	return svc.repo.QueryEarnedAchievements(ctx, studentID)
}

func (svc *Service) evaluateAchievements(ctx context.Context, studentID string) ([]Achievement, error) {
	earned, err := svc.repo.QueryEarnedAchievements(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying earned achievements")
	}
	earnedSet := make(map[string]bool, len(earned))
	for _, ea := range earned {
		earnedSet[ea.AchievementID] = true
	}

	lifetime, err := svc.repo.GetLifetimeEarned(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "summing lifetime points")
	}
	completions, err := svc.stats.CountCompletions(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "counting completions")
	}
	_, longest, err := svc.stats.StreakCounts(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "loading streak")
	}

	var newAchvs []Achievement
	now := time.Now().UTC()
	for _, a := range Achievements {
		if earnedSet[a.ID] {
			continue
		}
		var value int
		switch a.Kind {
		case KindPoints:
			value = lifetime
		case KindCompletions:
			value = completions
		case KindStreak:
			value = longest
		}
		if value < a.Threshold {
			continue
		}
		if _, err := svc.repo.CreateEarnedAchievement(ctx, EarnedAchievement{
			StudentID:     studentID,
			AchievementID: a.ID,
			EarnedAt:      now,
		}); err != nil {
			return nil, errors.Wrap(err, "granting achievement")
		}
		newAchvs = append(newAchvs, a)
	}
	return newAchvs, nil
}
