package aisvc

import (
	"context"
	"fmt"
	"time"

	"github.com/playlearnspark/backend/core/homework"
)

// staticAnalyzer hands out the same friendly guidance for every question.
// It stands in for gemini in dev and test where no API key is configured.
type staticAnalyzer struct{}

var _ homework.Analyzer = (*staticAnalyzer)(nil) // interface compliance check

func NewStaticAnalyzer() *staticAnalyzer {
	return &staticAnalyzer{}
}

func (a *staticAnalyzer) Analyze(ctx context.Context, ah homework.AnalyzeHomework) (homework.Analysis, error) {
	return homework.Analysis{
		Subject: ah.Subject,
		Summary: fmt.Sprintf("Let's figure out this %s problem together.", ah.Subject),
		Steps: []string{
			"Read the problem out loud, slowly.",
			"Underline the numbers or words that matter most.",
			"Try the first small piece on paper before the whole thing.",
		},
		Hints: []string{
			"Think about a similar problem you solved before.",
			"Drawing a little picture often helps.",
		},
		Encouragement: "You are doing great, keep going!",
		Model:         "static",
		AnalyzedAt:    time.Now().UTC(),
	}, nil
}
