package game

import (
	"context"
	"time"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/reward"
)

// MinPointsToPlay is the balance a student needs before mini-games unlock.
const MinPointsToPlay = 10

type (
	Game struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}

	// Info is a catalog game decorated with the asking student's standing.
	Info struct {
		Game
		Locked    bool `json:"locked"`
		HighScore int  `json:"high_score"`
	}

	Score struct {
		ID        string    `json:"id"`
		StudentID string    `json:"student_id"`
		GameID    string    `json:"game_id"`
		Score     int       `json:"score"`
		PlayedAt  time.Time `json:"played_at"`
	}

	SubmitScore struct {
		StudentID string `json:"-" validate:"required"`
		GameID    string `json:"game_id" validate:"required"`
		Score     int    `json:"score" validate:"gte=0"`
	}

	// ScoreResult reports what a submitted score changed: a beaten personal
	// best pays a small point bonus, which in turn may unlock achievements.
	ScoreResult struct {
		Score           Score                `json:"score"`
		NewHighScore    bool                 `json:"new_high_score"`
		HighScore       int                  `json:"high_score"`
		BonusAwarded    int                  `json:"bonus_awarded"`
		PointsBalance   int                  `json:"points_balance"`
		NewAchievements []reward.Achievement `json:"new_achievements,omitempty"`
	}

	LeaderboardEntry struct {
		Rank      int    `json:"rank"`
		StudentID string `json:"student_id"`
		Score     int    `json:"score"`
	}
)

var Games = []Game{
	{ID: "spark-collector", Title: "Spark Collector", Description: "Catch falling sparks before they fizzle out", Icon: "🎇"},
	{ID: "memory-match", Title: "Memory Match", Description: "Flip cards and find the matching pairs", Icon: "🃏"},
	{ID: "shape-sorter", Title: "Shape Sorter", Description: "Sort tumbling shapes into the right bins", Icon: "🔷"},
	{ID: "number-dash", Title: "Number Dash", Description: "Race through sums before the timer runs out", Icon: "🏃"},
}

var gamesByID map[string]Game

func init() {
	gamesByID = make(map[string]Game, len(Games))
	for _, g := range Games {
		gamesByID[g.ID] = g
	}
}

func FindGame(id string) (Game, bool) {
	g, ok := gamesByID[id]
	return g, ok
}

func (ss *SubmitScore) Validate(ctx context.Context) error {
	return core.Validate.StructCtx(ctx, ss)
}
