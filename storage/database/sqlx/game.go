package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/game"
)

type scoreRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	Game      string    `db:"game"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

func (r scoreRow) unrow() game.Score {
	return game.Score{
		ID:        r.ID,
		StudentID: r.StudentID,
		GameID:    r.Game,
		Score:     r.Score,
		PlayedAt:  r.CreatedAt,
	}
}

type gameRepository struct {
	db *sqlx.DB
}

var _ game.Repository = (*gameRepository)(nil) // interface compliance check

func NewGameRepository(db *sqlx.DB) *gameRepository {
	return &gameRepository{db: db}
}

func (repo gameRepository) CreateScore(ctx context.Context, s game.Score) (game.Score, error) {
	s.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO game_score (id, student_id, game, score, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.StudentID, s.GameID, s.Score, s.PlayedAt.UTC())
	if err != nil {
		return game.Score{}, errors.Wrap(err, "inserting game score")
	}
	return s, nil
}

// QueryScores returns a student's plays newest first; gameID narrows to one game.
func (repo gameRepository) QueryScores(ctx context.Context, studentID, gameID string) ([]game.Score, error) {
	query := `SELECT * FROM game_score WHERE student_id = $1`
	args := []interface{}{studentID}
	if gameID != "" {
		query += ` AND game = $2`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC`

	var rows []scoreRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying game scores")
	}
	scores := make([]game.Score, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, row.unrow())
	}
	return scores, nil
}

func (repo gameRepository) GetHighScore(ctx context.Context, studentID, gameID string) (int, bool, error) {
	var best struct {
		High   int `db:"high"`
		Played int `db:"played"`
	}
	err := repo.db.GetContext(ctx, &best, `
		SELECT COALESCE(MAX(score), 0) AS high, COUNT(*) AS played
		FROM game_score WHERE student_id = $1 AND game = $2`, studentID, gameID)
	if err != nil {
		return 0, false, errors.Wrap(err, "finding high score")
	}
	return best.High, best.Played > 0, nil
}

// QueryHighScores lists every student's best for a game, feeding leaderboard rebuilds.
func (repo gameRepository) QueryHighScores(ctx context.Context, gameID string) (map[string]int, error) {
	var rows []struct {
		StudentID string `db:"student_id"`
		High      int    `db:"high"`
	}
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT student_id, MAX(score) AS high
		FROM game_score WHERE game = $1 GROUP BY student_id`, gameID)
	if err != nil {
		return nil, errors.Wrap(err, "querying high scores")
	}
	highs := make(map[string]int, len(rows))
	for _, row := range rows {
		highs[row.StudentID] = row.High
	}
	return highs, nil
}
