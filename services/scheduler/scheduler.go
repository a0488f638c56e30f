package scheduler

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/game"
	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
)

const jobTimeout = 5 * time.Minute

type (
	// digestStudent is one learner's line in the weekly parent digest.
	digestStudent struct {
		Name      string
		Completed int
		Points    int
		Streak    int
	}
	digestData struct {
		Name     string
		Students []digestStudent
	}

	// Scheduler runs the recurring background jobs: lapsing streaks shortly
	// after midnight, rebuilding game leaderboards and mailing parents a
	// weekly digest of their learners' activity.
	Scheduler struct {
		scheduler *gocron.Scheduler

		users    user.Service
		students *student.Service
		progress *progress.Service
		rewards  *reward.Service
		games    *game.Service
		mailSvc  core.EmailService
		logger   core.Logger
	}
)

func New(
	users user.Service,
	students *student.Service,
	progSvc *progress.Service,
	rewards *reward.Service,
	games *game.Service,
	mailSvc core.EmailService,
	logger core.Logger,
) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		users:     users,
		students:  students,
		progress:  progSvc,
		rewards:   rewards,
		games:     games,
		mailSvc:   mailSvc,
		logger:    logger,
	}
}

// Start registers all jobs and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	// streaks lapse at midnight UTC; run shortly after to let in-flight
	// completions land
	if _, err := s.scheduler.Every(1).Day().At("00:05").Do(s.lapseStreaks); err != nil {
		return errors.Wrap(err, "scheduling streak lapse")
	}
	if _, err := s.scheduler.Every(1).Hour().Do(s.rebuildLeaderboards); err != nil {
		return errors.Wrap(err, "scheduling leaderboard rebuild")
	}
	if _, err := s.scheduler.Every(1).Sunday().At("17:00").Do(s.sendWeeklyDigests); err != nil {
		return errors.Wrap(err, "scheduling weekly digest")
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop waits for running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) lapseStreaks() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.progress.LapseStreaks(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("lapsing streaks: %v", err), err)
		return
	}
	if n > 0 {
		s.logger.Info(fmt.Sprintf("lapsed %d streak(s)", n))
	}
}

func (s *Scheduler) rebuildLeaderboards() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.games.RebuildLeaderboards(ctx); err != nil {
		s.logger.Error(fmt.Sprintf("rebuilding leaderboards: %v", err), err)
	}
}

func (s *Scheduler) sendWeeklyDigests() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	isActive := true
	parents, err := s.users.Filter(ctx, user.QueryFilter{Roles: user.ParentRoles, IsActive: &isActive})
	if err != nil {
		s.logger.Error(fmt.Sprintf("querying parents for digest: %v", err), err)
		return
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	var messages []*core.EmailMessage
	for _, parent := range parents {
		msg, err := s.digestFor(ctx, parent, weekAgo)
		if err != nil {
			s.logger.Error(fmt.Sprintf("building digest for %s: %v", parent.ID, err), err)
			continue
		}
		if msg != nil {
			messages = append(messages, msg)
		}
	}

	if len(messages) > 0 {
		s.mailSvc.SendMessages(messages...)
		s.logger.Info(fmt.Sprintf("sent %d weekly digest(s)", len(messages)))
	}
}

// digestFor composes a parent's digest; nil when the parent has no learners.
func (s *Scheduler) digestFor(ctx context.Context, parent user.User, since time.Time) (*core.EmailMessage, error) {
	students, err := s.students.QueryByParent(ctx, parent.ID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, nil
	}

	data := digestData{Name: parent.Name}
	for _, std := range students {
		completed, err := s.progress.CountCompletedSince(ctx, std.ID, since)
		if err != nil {
			return nil, err
		}
		points, err := s.rewards.PointsEarnedSince(ctx, std.ID, since)
		if err != nil {
			return nil, err
		}
		data.Students = append(data.Students, digestStudent{
			Name:      std.Name,
			Completed: completed,
			Points:    points,
			Streak:    std.StreakCurrent,
		})
	}

	return &core.EmailMessage{
		To:           []mail.Address{{Name: parent.Name, Address: parent.Email}},
		Subject:      "Your weekly learning digest",
		TemplateName: "weekly-digest",
		TemplateData: data,
	}, nil
}
