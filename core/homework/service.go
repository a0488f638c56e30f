package homework

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/user"
)

var (
	// errors
	ErrDailyLimitReached   = errors.New("daily homework analysis limit reached")
	ErrAnalyzerUnavailable = errors.New("the homework helper is taking a break, please try again in a moment")
)

type (
	// Analyzer turns a homework question into guided help. The gemini
	// client satisfies it; tests plug in a canned one.
	Analyzer interface {
		Analyze(ctx context.Context, ah AnalyzeHomework) (Analysis, error)
	}

	// RateLimiter counts hits on a key within a rolling window.
	// The redis store satisfies it.
	RateLimiter interface {
		Incr(ctx context.Context, key string, window time.Duration) (int64, error)
		Decr(ctx context.Context, key string) error
	}

	Service struct {
		analyzer Analyzer
		limiter  RateLimiter
	}
)

func NewService(analyzer Analyzer, limiter RateLimiter) *Service {
	return &Service{analyzer: analyzer, limiter: limiter}
}

// Analyze runs a homework question through the assistant, enforcing the
// caller's daily quota first. Premium accounts get the higher limit.
func (svc *Service) Analyze(ctx context.Context, usr user.User, ah AnalyzeHomework) (Analysis, error) {
	limit := core.Conf.HomeworkDailyLimit
	if usr.IsPremium() {
		limit = core.Conf.HomeworkDailyLimitPremium
	}

	key := dailyKey(usr.ID, time.Now().UTC())
	count, err := svc.limiter.Incr(ctx, key, 24*time.Hour)
	if err != nil {
		return Analysis{}, errors.Wrap(err, "counting homework requests")
	}
	if count > int64(limit) {
		return Analysis{}, ErrDailyLimitReached
	}

	analysis, err := svc.analyzer.Analyze(ctx, ah)
	if err != nil {
		// an upstream failure must not consume the day's quota
		_ = svc.limiter.Decr(ctx, key)
		// upstream failures surface as a friendly message, never a trace
		return Analysis{}, errors.WithMessage(ErrAnalyzerUnavailable, err.Error())
	}
	analysis.RemainingToday = limit - int(count)
	if analysis.RemainingToday < 0 {
		analysis.RemainingToday = 0
	}
	return analysis, nil
}

func dailyKey(userID string, now time.Time) string {
	return fmt.Sprintf("homework:%s:%s", userID, now.Format("2006-01-02"))
}
