package inmemdb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/feedback"
)

type feedbackRepository struct {
	db *feedbackTable
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

func NewFeedbackRepository(db *DB) *feedbackRepository {
	return &feedbackRepository{db: db.feedback}
}

func (repo *feedbackRepository) CreateFeedback(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	fb.ID = uuid.New().String()
	repo.db.t[fb.ID] = &fb
	repo.db.order = append(repo.db.order, fb.ID)
	return fb, nil
}

func (repo *feedbackRepository) GetFeedbackByID(ctx context.Context, id string) (feedback.Feedback, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if fb, ok := repo.db.t[id]; ok {
		return *fb, nil
	}
	return feedback.Feedback{}, feedback.ErrNotFound
}

func (repo *feedbackRepository) FilterFeedback(ctx context.Context, filter feedback.QueryFilter, p core.Pagination, ordering ...core.DBOrdering) ([]feedback.Feedback, int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matches := make([]feedback.Feedback, 0)
	for _, id := range repo.db.order {
		fb, ok := repo.db.t[id]
		if !ok {
			continue
		}
		if filter.Status != "" && fb.Status != filter.Status {
			continue
		}
		if filter.Category != "" && fb.Category != filter.Category {
			continue
		}
		if filter.Rating != 0 && fb.Rating != filter.Rating {
			continue
		}
		matches = append(matches, *fb)
	}

	// newest first unless asked otherwise
	if len(ordering) == 0 || !ordering[0].Ascending {
		for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
			matches[i], matches[j] = matches[j], matches[i]
		}
	}

	total := len(matches)
	if p.Offset > 0 {
		if p.Offset >= total {
			return []feedback.Feedback{}, total, nil
		}
		matches = matches[p.Offset:]
	}
	if p.Limit > 0 && p.Limit < len(matches) {
		matches = matches[:p.Limit]
	}
	return matches, total, nil
}

func (repo *feedbackRepository) UpdateFeedbackStatus(ctx context.Context, id, status string) (feedback.Feedback, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	fb, ok := repo.db.t[id]
	if !ok {
		return feedback.Feedback{}, feedback.ErrNotFound
	}
	fb.Status = status
	fb.UpdatedAt = time.Now().UTC()
	return *fb, nil
}

func (repo *feedbackRepository) DeleteFeedbackByID(ctx context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.t, id)
	}
	return nil
}
