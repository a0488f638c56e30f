package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/playlearnspark/backend/core/game"
)

type gameRepository struct {
	db *gameTable
}

var _ game.Repository = (*gameRepository)(nil) // interface compliance check

func NewGameRepository(db *DB) *gameRepository {
	return &gameRepository{db: db.game}
}

func (repo *gameRepository) CreateScore(ctx context.Context, s game.Score) (game.Score, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s.ID = uuid.New().String()
	repo.db.scores[s.StudentID] = append(repo.db.scores[s.StudentID], s)
	return s, nil
}

// QueryScores returns a student's plays newest first; gameID narrows to one game.
func (repo *gameRepository) QueryScores(ctx context.Context, studentID, gameID string) ([]game.Score, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	all := repo.db.scores[studentID]
	scores := make([]game.Score, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if gameID != "" && all[i].GameID != gameID {
			continue
		}
		scores = append(scores, all[i])
	}
	return scores, nil
}

func (repo *gameRepository) GetHighScore(ctx context.Context, studentID, gameID string) (int, bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var high int
	var played bool
	for _, s := range repo.db.scores[studentID] {
		if s.GameID != gameID {
			continue
		}
		if !played || s.Score > high {
			high = s.Score
		}
		played = true
	}
	return high, played, nil
}

func (repo *gameRepository) QueryHighScores(ctx context.Context, gameID string) (map[string]int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	highs := make(map[string]int)
	for studentID, scores := range repo.db.scores {
		for _, s := range scores {
			if s.GameID != gameID {
				continue
			}
			if best, ok := highs[studentID]; !ok || s.Score > best {
				highs[studentID] = s.Score
			}
		}
	}
	return highs, nil
}

// leaderboard is a map-backed game.Leaderboard for tests and local runs;
// production uses the redis one.
type leaderboard struct {
	// gameID -> studentID -> best
	boards map[string]map[string]int
	mutex  sync.RWMutex
}

var _ game.Leaderboard = (*leaderboard)(nil) // interface compliance check

func NewLeaderboard() *leaderboard {
	return &leaderboard{boards: make(map[string]map[string]int)}
}

func (lb *leaderboard) RecordScore(ctx context.Context, gameID, studentID string, score int) error {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	board, ok := lb.boards[gameID]
	if !ok {
		board = make(map[string]int)
		lb.boards[gameID] = board
	}
	if best, ok := board[studentID]; !ok || score > best {
		board[studentID] = score
	}
	return nil
}

func (lb *leaderboard) Top(ctx context.Context, gameID string, n int64) ([]game.LeaderboardEntry, error) {
	lb.mutex.RLock()
	defer lb.mutex.RUnlock()

	entries := lb.ranked(gameID)
	if n > 0 && int64(len(entries)) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (lb *leaderboard) Rank(ctx context.Context, gameID, studentID string) (int, int, error) {
	lb.mutex.RLock()
	defer lb.mutex.RUnlock()

	for _, e := range lb.ranked(gameID) {
		if e.StudentID == studentID {
			return e.Rank, e.Score, nil
		}
	}
	return 0, 0, nil
}

func (lb *leaderboard) ranked(gameID string) []game.LeaderboardEntry {
	board := lb.boards[gameID]
	entries := make([]game.LeaderboardEntry, 0, len(board))
	for studentID, score := range board {
		entries = append(entries, game.LeaderboardEntry{StudentID: studentID, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].StudentID < entries[j].StudentID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
