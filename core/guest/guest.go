// Package guest lets visitors try activities before signing up. Sessions are
// short-lived, live outside the database and never touch student records.
package guest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/content"
)

var (
	// errors
	ErrSessionNotFound = errors.New("guest session not found or expired")
	ErrUnknownActivity = errors.New("unknown activity")
)

type (
	Session struct {
		ID           string    `json:"id"`
		StartedAt    time.Time `json:"started_at"`
		LastSeenAt   time.Time `json:"last_seen_at"`
		CompletedIDs []string  `json:"completed_ids"`
		Points       int       `json:"points"`
	}

	// RecordResult mirrors what signed-in students get when completing an
	// activity, minus levels, streaks and achievements.
	RecordResult struct {
		Session          Session `json:"session"`
		PointsAwarded    int     `json:"points_awarded"`
		AlreadyCompleted bool    `json:"already_completed"`
	}

	// SessionStore keeps sessions with a TTL. The redis store satisfies it.
	SessionStore interface {
		SaveSession(ctx context.Context, s Session, ttl time.Duration) error
		GetSession(ctx context.Context, id string) (Session, error)
		DeleteSession(ctx context.Context, id string) error
	}

	Service struct {
		store SessionStore
	}
)

func NewService(store SessionStore) *Service {
	return &Service{store: store}
}

func (svc *Service) Start(ctx context.Context) (Session, error) {
	now := time.Now().UTC()
	s := Session{
		ID:           uuid.New().String(),
		StartedAt:    now,
		LastSeenAt:   now,
		CompletedIDs: []string{},
	}
	if err := svc.store.SaveSession(ctx, s, core.Conf.GuestSessionTTL); err != nil {
		return Session{}, errors.Wrap(err, "saving guest session")
	}
	return s, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Session, error) {
	return svc.store.GetSession(ctx, id)
}

// RecordProgress marks an activity done in the session and refreshes its TTL.
// Repeats are no-ops, matching how student completions behave.
func (svc *Service) RecordProgress(ctx context.Context, id, activityID string) (RecordResult, error) {
	ref, ok := content.LookupActivity(activityID)
	if !ok {
		return RecordResult{}, core.NewValidationError(ErrUnknownActivity,
			core.FieldError{Field: "activity_id", Error: ErrUnknownActivity.Error()})
	}

	s, err := svc.store.GetSession(ctx, id)
	if err != nil {
		return RecordResult{}, err
	}

	for _, done := range s.CompletedIDs {
		if done == activityID {
			return RecordResult{Session: s, AlreadyCompleted: true}, nil
		}
	}

	s.CompletedIDs = append(s.CompletedIDs, activityID)
	s.Points += ref.Points
	s.LastSeenAt = time.Now().UTC()
	if err := svc.store.SaveSession(ctx, s, core.Conf.GuestSessionTTL); err != nil {
		return RecordResult{}, errors.Wrap(err, "saving guest session")
	}
	return RecordResult{Session: s, PointsAwarded: ref.Points}, nil
}

func (svc *Service) End(ctx context.Context, id string) error {
	return svc.store.DeleteSession(ctx, id)
}
