package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/playlearnspark/backend/apps/api/echo"
	"github.com/playlearnspark/backend/core/content"
	"github.com/playlearnspark/backend/core/feedback"
	"github.com/playlearnspark/backend/core/game"
	"github.com/playlearnspark/backend/core/guest"
	"github.com/playlearnspark/backend/core/homework"
	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
	aisvc "github.com/playlearnspark/backend/services/ai"
	emailsvc "github.com/playlearnspark/backend/services/email"
	logsvc "github.com/playlearnspark/backend/services/logger"
	inmemdb "github.com/playlearnspark/backend/storage/database/inmem"
)

var (
	app *Server

	usrRepo     user.Repository
	usrSvc      user.Service
	stdSvc      *student.Service
	progressSvc *progress.Service
	rewardSvc   *reward.Service
	gameSvc     *game.Service
	contentSvc  *content.Service
	feedbackSvc *feedback.Service
	guestSvc    *guest.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

// setup rebuilds the whole stack on fresh in-memory stores; each Test
// function starts from a blank slate.
func setup(t *testing.T) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}

	usrRepo = inmemdb.NewUserRepository(db)
	progressRepo := inmemdb.NewProgressRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock()
	emailsvc.SentMessages = nil

	usrSvc = user.NewServiceMock(usrRepo, mailSvc)
	stdSvc = student.NewService(inmemdb.NewStudentRepository(db))
	rewardSvc = reward.NewService(inmemdb.NewRewardRepository(db), progressRepo)
	progressSvc = progress.NewService(progressRepo, rewardSvc)
	gameSvc = game.NewService(inmemdb.NewGameRepository(db), inmemdb.NewLeaderboard(), rewardSvc)
	contentSvc = content.NewService(inmemdb.NewLessonRepository(db))
	feedbackSvc = feedback.NewService(inmemdb.NewFeedbackRepository(db))
	homeworkSvc := homework.NewService(aisvc.NewStaticAnalyzer(), inmemdb.NewRateLimiter())
	guestSvc = guest.NewService(inmemdb.NewGuestSessionStore())

	logger := logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))

	app = NewServer(
		"", /* addr */
		Deps{
			Logger:         logger,
			DisableReqLogs: true,
			UserSvc:        usrSvc,
			StudentSvc:     stdSvc,
			ProgressSvc:    progressSvc,
			RewardSvc:      rewardSvc,
			GameSvc:        gameSvc,
			ContentSvc:     contentSvc,
			FeedbackSvc:    feedbackSvc,
			HomeworkSvc:    homeworkSvc,
			GuestSvc:       guestSvc,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func ctxBg() context.Context { return context.Background() }

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func createUser(t *testing.T, name, uname, email, pwd string, roles []string, active bool) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
	usr.SetActive(active)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("SetPassword(): %v", err)
		}
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func createStudent(t *testing.T, parentID, name string, age int) student.Student {
	t.Helper()

	std, err := stdSvc.Create(context.Background(), parentID, student.NewStudent{Name: name, Age: age, Avatar: "⭐"})
	if err != nil {
		t.Fatalf("stdSvc.Create(): %v", err)
	}
	return std
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
