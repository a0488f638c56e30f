package game

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/reward"
)

// HighScoreBonus is paid whenever a student beats their personal best.
const HighScoreBonus = 5

var (
	// errors
	ErrGameNotFound = errors.New("game not found")
	ErrGameLocked   = errors.New("mini-games unlock at 10 points, keep learning")
)

type (
	// Leaderboard ranks best scores per game. The redis store satisfies it.
	Leaderboard interface {
		RecordScore(ctx context.Context, gameID, studentID string, score int) error
		Top(ctx context.Context, gameID string, n int64) ([]LeaderboardEntry, error)
		Rank(ctx context.Context, gameID, studentID string) (rank, score int, err error)
	}

	Repository interface {
		CreateScore(ctx context.Context, s Score) (Score, error)
		QueryScores(ctx context.Context, studentID, gameID string) ([]Score, error)
		// GetHighScore reports the student's best score and whether they played at all.
		GetHighScore(ctx context.Context, studentID, gameID string) (int, bool, error)
		// QueryHighScores lists every (student, game, best score) triple,
		// feeding leaderboard rebuilds.
		QueryHighScores(ctx context.Context, gameID string) (map[string]int, error)
	}

	Service struct {
		repo    Repository
		board   Leaderboard
		rewards *reward.Service
	}
)

func NewService(repo Repository, board Leaderboard, rewards *reward.Service) *Service {
	return &Service{repo: repo, board: board, rewards: rewards}
}

// List returns the game catalog from the student's point of view: every game
// carries their personal best, and all are locked until the student has
// earned MinPointsToPlay points.
func (svc *Service) List(ctx context.Context, studentID string) ([]Info, error) {
	balance, err := svc.rewards.Balance(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "loading balance")
	}
	locked := balance < MinPointsToPlay

	infos := make([]Info, 0, len(Games))
	for _, g := range Games {
		high, _, err := svc.repo.GetHighScore(ctx, studentID, g.ID)
		if err != nil {
			return nil, errors.Wrap(err, "loading high score")
		}
		infos = append(infos, Info{Game: g, Locked: locked, HighScore: high})
	}
	return infos, nil
}

// SubmitScore records a play. It fails while games are still locked, and a
// beaten personal best pays HighScoreBonus points.
func (svc *Service) SubmitScore(ctx context.Context, ss SubmitScore) (ScoreResult, error) {
	if _, ok := FindGame(ss.GameID); !ok {
		return ScoreResult{}, core.NewValidationError(ErrGameNotFound,
			core.FieldError{Field: "game_id", Error: ErrGameNotFound.Error()})
	}

	balance, err := svc.rewards.Balance(ctx, ss.StudentID)
	if err != nil {
		return ScoreResult{}, errors.Wrap(err, "loading balance")
	}
	if balance < MinPointsToPlay {
		return ScoreResult{}, core.NewValidationError(ErrGameLocked)
	}

	high, played, err := svc.repo.GetHighScore(ctx, ss.StudentID, ss.GameID)
	if err != nil {
		return ScoreResult{}, errors.Wrap(err, "loading high score")
	}
	newHigh := !played || ss.Score > high
	if newHigh {
		high = ss.Score
	}

	score, err := svc.repo.CreateScore(ctx, Score{
		StudentID: ss.StudentID,
		GameID:    ss.GameID,
		Score:     ss.Score,
		PlayedAt:  time.Now().UTC(),
	})
	if err != nil {
		return ScoreResult{}, errors.Wrap(err, "recording score")
	}
	if err := svc.board.RecordScore(ctx, ss.GameID, ss.StudentID, ss.Score); err != nil {
		return ScoreResult{}, errors.Wrap(err, "updating leaderboard")
	}

	res := ScoreResult{
		Score:         score,
		NewHighScore:  newHigh,
		HighScore:     high,
		PointsBalance: balance,
	}
	if newHigh {
		res.BonusAwarded = HighScoreBonus
		res.PointsBalance, res.NewAchievements, err = svc.rewards.Award(
			ctx, ss.StudentID, HighScoreBonus, reward.ReasonGameBonus, ss.GameID)
		if err != nil {
			return ScoreResult{}, errors.Wrap(err, "awarding bonus")
		}
	}
	return res, nil
}

func (svc *Service) Scores(ctx context.Context, studentID, gameID string) ([]Score, error) {
	return svc.repo.QueryScores(ctx, studentID, gameID)
}

func (svc *Service) Leaderboard(ctx context.Context, gameID string, n int64) ([]LeaderboardEntry, error) {
	if _, ok := FindGame(gameID); !ok {
		return nil, core.NewValidationError(ErrGameNotFound,
			core.FieldError{Field: "game_id", Error: ErrGameNotFound.Error()})
	}
	return svc.board.Top(ctx, gameID, n)
}

// RebuildLeaderboards replays every stored best score into the leaderboard.
// Run on a schedule it keeps the board honest after cache loss.
func (svc *Service) RebuildLeaderboards(ctx context.Context) error {
	for _, g := range Games {
		highs, err := svc.repo.QueryHighScores(ctx, g.ID)
		if err != nil {
			return errors.Wrapf(err, "querying high scores for %s", g.ID)
		}
		for studentID, score := range highs {
			if err := svc.board.RecordScore(ctx, g.ID, studentID, score); err != nil {
				return errors.Wrapf(err, "recording %s score for %s", g.ID, studentID)
			}
		}
	}
	return nil
}
