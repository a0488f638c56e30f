package progress

import (
	"time"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/reward"
)

// Level progression: completing LevelSize catalog entries of a module
// unlocks the next level, up to MaxLevel.
const (
	MaxLevel  = 5
	LevelSize = 10
)

type (
	// Completion marks a catalog entry as done for a Student; the
	// (StudentID, ActivityID) pair is unique so repeats never double-award.
	Completion struct {
		StudentID   string    `json:"student_id"`
		ActivityID  string    `json:"activity_id"`
		Module      string    `json:"module"`
		Points      int       `json:"points"`
		CompletedAt time.Time `json:"completed_at"` // UTC
	}

	ModuleLevel struct {
		StudentID  string    `json:"student_id"`
		Module     string    `json:"module"`
		Level      int       `json:"level"`
		Progress   int       `json:"progress"` // completions within the current level
		UnlockedAt time.Time `json:"unlocked_at"`
	}

	Streak struct {
		Current int       `json:"current"`
		Longest int       `json:"longest"`
		LastDay time.Time `json:"last_day,omitempty"` // UTC date
	}

	// CompletionResult reports everything that happened on a completion:
	// progress, level unlocks, streak movement, points and achievements.
	CompletionResult struct {
		AlreadyCompleted bool                 `json:"already_completed"`
		Completion       Completion           `json:"completion"`
		ModuleLevel      ModuleLevel          `json:"module_level"`
		LevelUnlocked    bool                 `json:"level_unlocked"`
		Streak           Streak               `json:"streak"`
		PointsAwarded    int                  `json:"points_awarded"`
		PointsBalance    int                  `json:"points_balance"`
		NewAchievements  []reward.Achievement `json:"new_achievements,omitempty"`
	}

	// Overview is the per-student progress report.
	Overview struct {
		StudentID      string        `json:"student_id"`
		TotalCompleted int           `json:"total_completed"`
		CompletedIDs   []string      `json:"completed_ids"`
		Modules        []ModuleLevel `json:"modules"`
		Streak         Streak        `json:"streak"`
	}
)

// CompleteActivity contains information needed to record a completion.
type CompleteActivity struct {
	StudentID  string `json:"student_id" validate:"required"`
	ActivityID string `json:"activity_id" validate:"required"`
}

func (ca *CompleteActivity) Validate() error {
	ca.StudentID = core.CleanString(ca.StudentID)
	ca.ActivityID = core.CleanString(ca.ActivityID)
	return core.Validate.Struct(ca)
}
