package homework

import (
	"context"
	"strings"
	"time"

	"github.com/playlearnspark/backend/core"
)

type (
	// AnalyzeHomework is a guidance request for a homework problem. The
	// assistant explains and hints, it never hands out the answer.
	AnalyzeHomework struct {
		Subject    string `json:"subject" validate:"required,max=50"`
		GradeLevel string `json:"grade_level" validate:"omitempty,max=20"`
		Question   string `json:"question" validate:"required,min=10,max=2000"`
	}

	Analysis struct {
		Subject       string    `json:"subject"`
		Summary       string    `json:"summary"`
		Steps         []string  `json:"steps"`
		Hints         []string  `json:"hints"`
		Encouragement string    `json:"encouragement"`
		Model         string    `json:"model"`
		AnalyzedAt    time.Time `json:"analyzed_at"`
		// RemainingToday counts the analyses left in the caller's daily quota.
		RemainingToday int `json:"remaining_today"`
	}
)

func (ah *AnalyzeHomework) Validate(ctx context.Context) error {
	ah.Subject = core.CleanString(ah.Subject, true /* lower */)
	ah.GradeLevel = core.CleanString(ah.GradeLevel, true /* lower */)
	ah.Question = strings.TrimSpace(ah.Question)
	return core.Validate.StructCtx(ctx, ah)
}
