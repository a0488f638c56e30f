// Package echoapi exposes the platform over HTTP: auth and user management,
// learner profiles, the learning catalog and managed lessons, progress,
// rewards, mini-games, feedback, guest sessions and the homework helper.
package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/content"
	"github.com/playlearnspark/backend/core/feedback"
	"github.com/playlearnspark/backend/core/game"
	"github.com/playlearnspark/backend/core/guest"
	"github.com/playlearnspark/backend/core/homework"
	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
)

type (
	// Deps carries everything the API server needs to run.
	Deps struct {
		Logger         core.Logger
		DisableReqLogs bool

		UserSvc     user.Service
		StudentSvc  *student.Service
		ProgressSvc *progress.Service
		RewardSvc   *reward.Service
		GameSvc     *game.Service
		ContentSvc  *content.Service
		FeedbackSvc *feedback.Service
		HomeworkSvc *homework.Service
		GuestSvc    *guest.Service
	}

	Server struct {
		addr     string
		deps     Deps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		addr:     addr,
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)
	optJWT := middleware.JWTWithConfig(optionalJWTConfig)

	registerUserAPI(v1, jwt, s.deps.UserSvc)
	registerStudentAPI(v1, jwt, s.deps)
	registerProgressAPI(v1, jwt, s.deps)
	registerRewardAPI(v1, jwt, s.deps)
	registerGameAPI(v1, jwt, s.deps)
	registerContentAPI(v1, jwt, s.deps.ContentSvc)
	registerFeedbackAPI(v1, jwt, optJWT, s.deps.FeedbackSvc)
	registerHomeworkAPI(v1, jwt, s.deps.HomeworkSvc, s.deps.UserSvc)
	registerGuestAPI(v1, jwt, s.deps.GuestSvc)
}

// Start runs the listener in the background; failures land on Errors().
func (s *Server) Start() {
	go func() {
		s.errs <- s.app.Start(s.addr)
	}()
}

func (s *Server) Errors() <-chan error {
	return s.errs
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// signalShutdown lets the error handler trigger a graceful shutdown when an
// unrecoverable error surfaces.
func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Play Learn Spark API!")
}
