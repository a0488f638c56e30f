package scheduler

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/playlearnspark/backend/core/content"
	"github.com/playlearnspark/backend/core/game"
	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
	emailsvc "github.com/playlearnspark/backend/services/email"
	logsvc "github.com/playlearnspark/backend/services/logger"
	inmemdb "github.com/playlearnspark/backend/storage/database/inmem"
)

func newTestScheduler(t *testing.T) (*Scheduler, progress.Repository) {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}

	mailSvc := emailsvc.NewConsoleServiceMock()
	progRepo := inmemdb.NewProgressRepository(db)
	rewards := reward.NewService(inmemdb.NewRewardRepository(db), progRepo)
	s := New(
		user.NewService(inmemdb.NewUserRepository(db), mailSvc),
		student.NewService(inmemdb.NewStudentRepository(db)),
		progress.NewService(progRepo, rewards),
		rewards,
		game.NewService(inmemdb.NewGameRepository(db), inmemdb.NewLeaderboard(), rewards),
		mailSvc,
		logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
	)
	return s, progRepo
}

func (s *Scheduler) newParent(t *testing.T, name, email string) user.User {
	t.Helper()
	usr, err := s.users.Create(context.Background(), user.NewUser{
		Name:     name,
		Email:    email,
		Password: "V3ry.Secure.Pwd",
		Roles:    []string{user.RoleParent},
	})
	if err != nil {
		t.Fatalf("creating parent: %v", err)
	}
	return usr
}

func TestWeeklyDigest(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	parent := s.newParent(t, "Priya", "priya@example.test")
	s.newParent(t, "Idle", "idle@example.test") // no learners, no digest

	zoe, err := s.students.Create(ctx, parent.ID, student.NewStudent{Name: "Zoe", Age: 6, Avatar: "🦄"})
	if err != nil {
		t.Fatalf("creating student: %v", err)
	}
	if _, err = s.students.Create(ctx, parent.ID, student.NewStudent{Name: "Ravi", Age: 9, Avatar: "🚀"}); err != nil {
		t.Fatalf("creating student: %v", err)
	}

	ref, _ := content.LookupActivity("english-letter-a")
	if _, err = s.progress.Complete(ctx, progress.CompleteActivity{StudentID: zoe.ID, ActivityID: ref.ID}); err != nil {
		t.Fatalf("completing activity: %v", err)
	}

	emailsvc.SentMessages = nil
	s.sendWeeklyDigests()

	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("sent %d message(s); want 1", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if got := msg.To[0].Address; got != parent.Email {
		t.Errorf("recipient: got %q, want %q", got, parent.Email)
	}
	if msg.TemplateName != "weekly-digest" {
		t.Errorf("template: got %q", msg.TemplateName)
	}

	data, ok := msg.TemplateData.(digestData)
	if !ok {
		t.Fatalf("template data is %T", msg.TemplateData)
	}
	if data.Name != "Priya" {
		t.Errorf("digest name: got %q", data.Name)
	}
	if len(data.Students) != 2 {
		t.Fatalf("digest covers %d student(s); want 2", len(data.Students))
	}
	byName := map[string]digestStudent{}
	for _, ds := range data.Students {
		byName[ds.Name] = ds
	}
	if ds := byName["Zoe"]; ds.Completed != 1 || ds.Points != ref.Points || ds.Streak != 1 {
		t.Errorf("Zoe digest line: %+v", ds)
	}
	if ds := byName["Ravi"]; ds.Completed != 0 || ds.Points != 0 || ds.Streak != 0 {
		t.Errorf("Ravi digest line: %+v", ds)
	}
}

func TestLapseStreaksJob(t *testing.T) {
	s, progRepo := newTestScheduler(t)
	ctx := context.Background()

	parent := s.newParent(t, "Priya", "priya@example.test")
	zoe, err := s.students.Create(ctx, parent.ID, student.NewStudent{Name: "Zoe", Age: 6})
	if err != nil {
		t.Fatalf("creating student: %v", err)
	}

	// active three days ago, streak should lapse
	stale := progress.Streak{Current: 4, Longest: 4, LastDay: progress.DateOf(time.Now().UTC().AddDate(0, 0, -3))}
	if err := progRepo.SetStreak(ctx, zoe.ID, stale); err != nil {
		t.Fatalf("seeding streak: %v", err)
	}

	s.lapseStreaks()

	ov, err := s.progress.Overview(ctx, zoe.ID)
	if err != nil {
		t.Fatalf("loading overview: %v", err)
	}
	if ov.Streak.Current != 0 || ov.Streak.Longest != 4 {
		t.Errorf("streak after lapse: %+v", ov.Streak)
	}
}
