package game_test

import (
	"context"
	"testing"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/game"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
	inmemdb "github.com/playlearnspark/backend/storage/database/inmem"
)

type testEnv struct {
	svc     *game.Service
	rewards *reward.Service
	stdRepo student.Repository
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	rewards := reward.NewService(inmemdb.NewRewardRepository(db), inmemdb.NewProgressRepository(db))
	return testEnv{
		svc:     game.NewService(inmemdb.NewGameRepository(db), inmemdb.NewLeaderboard(), rewards),
		rewards: rewards,
		stdRepo: inmemdb.NewStudentRepository(db),
	}
}

func (env testEnv) newStudent(t *testing.T, name string, points int) student.Student {
	t.Helper()
	ctx := context.Background()
	std, err := env.stdRepo.CreateStudent(ctx, student.Student{ParentID: "parent-1", Name: name, Age: 8, Avatar: "🚀"})
	if err != nil {
		t.Fatalf("creating student: %v", err)
	}
	if points > 0 {
		if _, _, err = env.rewards.Award(ctx, std.ID, points, reward.ReasonActivity, "seed"); err != nil {
			t.Fatalf("seeding points: %v", err)
		}
	}
	return std
}

func TestGamesLockedBelowMinPoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	std := env.newStudent(t, "Zoe", 9) // one short

	infos, err := env.svc.List(ctx, std.ID)
	if err != nil {
		t.Fatalf("listing games: %v", err)
	}
	if len(infos) != len(game.Games) {
		t.Fatalf("listed %d games; want %d", len(infos), len(game.Games))
	}
	for _, info := range infos {
		if !info.Locked {
			t.Errorf("%s should be locked at 9 points", info.ID)
		}
	}

	_, err = env.svc.SubmitScore(ctx, game.SubmitScore{StudentID: std.ID, GameID: "spark-collector", Score: 12})
	if vErr, ok := err.(*core.ValidationError); !ok || vErr.Err != game.ErrGameLocked {
		t.Errorf("submit below threshold err = %v; want ErrGameLocked", err)
	}
}

func TestGamesUnlockAtMinPoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	std := env.newStudent(t, "Zoe", game.MinPointsToPlay)

	infos, err := env.svc.List(ctx, std.ID)
	if err != nil {
		t.Fatalf("listing games: %v", err)
	}
	for _, info := range infos {
		if info.Locked {
			t.Errorf("%s should be unlocked at %d points", info.ID, game.MinPointsToPlay)
		}
	}
}

func TestSubmitScoreHighScoreBonus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	std := env.newStudent(t, "Zoe", 10)

	// first play is always a personal best
	res, err := env.svc.SubmitScore(ctx, game.SubmitScore{StudentID: std.ID, GameID: "spark-collector", Score: 42})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if !res.NewHighScore || res.HighScore != 42 {
		t.Errorf("result = %+v; want new high score 42", res)
	}
	if res.BonusAwarded != game.HighScoreBonus {
		t.Errorf("BonusAwarded = %d; want %d", res.BonusAwarded, game.HighScoreBonus)
	}
	if res.PointsBalance != 15 {
		t.Errorf("PointsBalance = %d; want 15", res.PointsBalance)
	}

	// a worse play changes nothing
	res, err = env.svc.SubmitScore(ctx, game.SubmitScore{StudentID: std.ID, GameID: "spark-collector", Score: 30})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if res.NewHighScore || res.BonusAwarded != 0 {
		t.Errorf("result = %+v; want no bonus for 30 < 42", res)
	}
	if res.HighScore != 42 {
		t.Errorf("HighScore = %d; want 42 kept", res.HighScore)
	}

	// beating it pays again
	res, err = env.svc.SubmitScore(ctx, game.SubmitScore{StudentID: std.ID, GameID: "spark-collector", Score: 50})
	if err != nil {
		t.Fatalf("third submit: %v", err)
	}
	if !res.NewHighScore || res.BonusAwarded != game.HighScoreBonus {
		t.Errorf("result = %+v; want bonus for new best 50", res)
	}
}

func TestSubmitScoreUnknownGame(t *testing.T) {
	env := newTestEnv(t)
	std := env.newStudent(t, "Zoe", 10)

	_, err := env.svc.SubmitScore(context.Background(), game.SubmitScore{StudentID: std.ID, GameID: "pinball", Score: 1})
	if vErr, ok := err.(*core.ValidationError); !ok || vErr.Err != game.ErrGameNotFound {
		t.Errorf("unknown game err = %v; want ErrGameNotFound", err)
	}
}

func TestLeaderboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	zoe := env.newStudent(t, "Zoe", 10)
	ravi := env.newStudent(t, "Ravi", 10)

	for _, sub := range []game.SubmitScore{
		{StudentID: zoe.ID, GameID: "memory-match", Score: 20},
		{StudentID: ravi.ID, GameID: "memory-match", Score: 35},
		{StudentID: zoe.ID, GameID: "memory-match", Score: 28},
	} {
		if _, err := env.svc.SubmitScore(ctx, sub); err != nil {
			t.Fatalf("submitting %+v: %v", sub, err)
		}
	}

	entries, err := env.svc.Leaderboard(ctx, "memory-match", 10)
	if err != nil {
		t.Fatalf("loading leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("leaderboard has %d entries; want 2", len(entries))
	}
	if entries[0].StudentID != ravi.ID || entries[0].Score != 35 || entries[0].Rank != 1 {
		t.Errorf("first entry = %+v; want Ravi at 35", entries[0])
	}
	if entries[1].StudentID != zoe.ID || entries[1].Score != 28 {
		t.Errorf("second entry = %+v; want Zoe at her best 28", entries[1])
	}
}
