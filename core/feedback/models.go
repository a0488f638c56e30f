package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/playlearnspark/backend/core"
)

// Moderation statuses. New feedback stays private until an admin publishes it.
const (
	StatusNew       = "new"
	StatusPublished = "published"
	StatusHidden    = "hidden"
)

const (
	CategoryGeneral    = "general"
	CategoryContent    = "content"
	CategoryBug        = "bug"
	CategorySuggestion = "suggestion"
)

const MinMessageLen = 10

type (
	// Feedback left by a visitor. UserID is empty for anonymous and guest
	// submissions.
	Feedback struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id,omitempty"`
		Name      string    `json:"name"`
		Email     string    `json:"email,omitempty"`
		Rating    int       `json:"rating"`
		Category  string    `json:"category"`
		Message   string    `json:"message"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	NewFeedback struct {
		Name     string `json:"name" validate:"omitempty,max=100"`
		Email    string `json:"email" validate:"omitempty,email"`
		Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
		Category string `json:"category" validate:"omitempty,oneof=general content bug suggestion"`
		Message  string `json:"message" validate:"required,min=10"`
	}

	UpdateFeedback struct {
		Status string `json:"status" validate:"required,oneof=new published hidden"`
	}

	QueryFilter struct {
		Status   string `query:"status"`
		Category string `query:"category"`
		Rating   int    `query:"rating"`
	}
)

func (f Feedback) IsPublished() bool { return f.Status == StatusPublished }

func (nf *NewFeedback) Validate(ctx context.Context) error {
	nf.Name = core.CleanString(nf.Name)
	nf.Email = core.CleanString(nf.Email, true /* lower */)
	nf.Message = strings.TrimSpace(nf.Message)
	if nf.Category == "" {
		nf.Category = CategoryGeneral
	}
	return core.Validate.StructCtx(ctx, nf)
}

func (uf *UpdateFeedback) Validate(ctx context.Context) error {
	return core.Validate.StructCtx(ctx, uf)
}

func (f QueryFilter) IsEmpty() bool {
	return f == QueryFilter{}
}
