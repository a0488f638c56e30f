package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/playlearnspark/backend/apps/api/echo"
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
	aisvc "github.com/playlearnspark/backend/services/ai"
	emailsvc "github.com/playlearnspark/backend/services/email"
	logsvc "github.com/playlearnspark/backend/services/logger"
	"github.com/playlearnspark/backend/services/scheduler"
	"github.com/playlearnspark/backend/storage/cache"
	"github.com/playlearnspark/backend/storage/database"
	sqlxrepos "github.com/playlearnspark/backend/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.Conf

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up redis (leaderboards, guest sessions, rate limits)
	rdb, err := cache.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
	}
	defer rdb.Close()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)
	stdSvc := student.NewService(sqlxrepos.NewStudentRepository(db))
	progressRepo := sqlxrepos.NewProgressRepository(db)
	rewardSvc := reward.NewService(sqlxrepos.NewRewardRepository(db), progressRepo)
	progressSvc := progress.NewService(progressRepo, rewardSvc)
	gameSvc := game.NewService(sqlxrepos.NewGameRepository(db), cache.NewLeaderboard(rdb), rewardSvc)
	contentSvc := content.NewService(sqlxrepos.NewLessonRepository(db))
	feedbackSvc := feedback.NewService(sqlxrepos.NewFeedbackRepository(db))
	homeworkSvc := homework.NewService(aisvc.NewGeminiAnalyzer(logger), cache.NewRateLimiter(rdb))
	guestSvc := guest.NewService(cache.NewGuestSessionStore(rdb))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Background Jobs

	jobs := scheduler.New(usrSvc, stdSvc, progressSvc, rewardSvc, gameSvc, mailSvc, logger)
	if err = jobs.Start(); err != nil {
		logger.Fatal(fmt.Sprintf("starting scheduler: %v", err), err)
	}
	defer jobs.Stop()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.DebugServerAddress(), http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		conf.ServerAddress(),
		echoapi.Deps{
			Logger:      logger,
			UserSvc:     usrSvc,
			StudentSvc:  stdSvc,
			ProgressSvc: progressSvc,
			RewardSvc:   rewardSvc,
			GameSvc:     gameSvc,
			ContentSvc:  contentSvc,
			FeedbackSvc: feedbackSvc,
			HomeworkSvc: homeworkSvc,
			GuestSvc:    guestSvc,
		},
	)
	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}
