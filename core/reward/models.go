package reward

import (
	"context"
	"time"

	"github.com/playlearnspark/backend/core"
)

// Point entry reasons.
const (
	ReasonActivity   = "activity"
	ReasonGameBonus  = "game_bonus"
	ReasonRedemption = "redemption"
)

type (
	// PointEntry is one line of a student's point ledger. Spends carry a
	// negative Delta; Ref names the activity, game or reward involved.
	PointEntry struct {
		ID        string    `json:"id"`
		StudentID string    `json:"student_id"`
		Delta     int       `json:"delta"`
		Reason    string    `json:"reason"`
		Ref       string    `json:"ref,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	Redemption struct {
		ID         string    `json:"id"`
		StudentID  string    `json:"student_id"`
		RewardID   string    `json:"reward_id"`
		Cost       int       `json:"cost"`
		RedeemedAt time.Time `json:"redeemed_at"`
	}

	EarnedAchievement struct {
		StudentID     string    `json:"student_id"`
		AchievementID string    `json:"achievement_id"`
		EarnedAt      time.Time `json:"earned_at"`
	}

	RedeemReward struct {
		StudentID string `json:"-" validate:"required"`
		RewardID  string `json:"reward_id" validate:"required"`
	}
)

func (rr *RedeemReward) Validate(ctx context.Context) error {
	return core.Validate.StructCtx(ctx, rr)
}
