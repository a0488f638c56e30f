package feedback

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
)

var (
	// errors
	ErrNotFound = errors.New("feedback not found")
)

type (
	Repository interface {
		CreateFeedback(ctx context.Context, fb Feedback) (Feedback, error)
		GetFeedbackByID(ctx context.Context, id string) (Feedback, error)
		// FilterFeedback applies AND operation on available QueryFilter fields
		// and returns the page along with the unpaginated total.
		FilterFeedback(ctx context.Context, filter QueryFilter, p core.Pagination, ordering ...core.DBOrdering) ([]Feedback, int, error)
		UpdateFeedbackStatus(ctx context.Context, id, status string) (Feedback, error)
		DeleteFeedbackByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit stores new feedback for moderation. userID and name identify the
// author when known; both may be empty for anonymous visitors.
func (svc *Service) Submit(ctx context.Context, nf NewFeedback, userID string) (Feedback, error) {
	now := time.Now().UTC()
	name := nf.Name
	if name == "" {
		name = "Anonymous"
	}
	return svc.repo.CreateFeedback(ctx, Feedback{
		UserID:    userID,
		Name:      name,
		Email:     nf.Email,
		Rating:    nf.Rating,
		Category:  nf.Category,
		Message:   nf.Message,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Feedback, error) {
	return svc.repo.GetFeedbackByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter, p core.Pagination, ordering ...core.DBOrdering) ([]Feedback, int, error) {
	return svc.repo.FilterFeedback(ctx, filter, p, ordering...)
}

// Published lists the latest published entries, newest first. They feed the
// testimonial strip on the landing page.
func (svc *Service) Published(ctx context.Context, limit int) ([]Feedback, error) {
	fbs, _, err := svc.repo.FilterFeedback(ctx,
		QueryFilter{Status: StatusPublished},
		core.Pagination{Limit: limit},
		core.DBOrdering{Field: "created_at"},
	)
	return fbs, err
}

func (svc *Service) SetStatus(ctx context.Context, id string, uf UpdateFeedback) (Feedback, error) {
	fb, err := svc.repo.UpdateFeedbackStatus(ctx, id, uf.Status)
	if err != nil {
		return Feedback{}, errors.Wrap(err, "updating feedback status")
	}
	return fb, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteFeedbackByID(ctx, ids...)
}
