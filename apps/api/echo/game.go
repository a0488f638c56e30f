package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/game"
	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
)

const defaultLeaderboardSize = 10

type gameApi struct {
	svc    *game.Service
	stdSvc *student.Service
	usrSvc user.Service
}

func registerGameAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := gameApi{
		svc:    deps.GameSvc,
		stdSvc: deps.StudentSvc,
		usrSvc: deps.UserSvc,
	}

	gg := g.Group("/games")
	gg.GET("/:id/leaderboard", api.leaderboard) // public
	gg.GET("", api.list, jwt)
	gg.POST("/scores", api.submitScore, jwt)
	gg.GET("/:id/scores", api.scores, jwt)
}

// Handlers

// list shows the game catalog from a learner's point of view, with lock
// state and personal bests. `student_id` names the learner playing.
func (api *gameApi) list(ctx echo.Context) error {
	std, err := getOwnedStudent(ctx, ctx.QueryParam("student_id"), api.stdSvc, api.usrSvc)
	if err != nil {
		return err
	}

	infos, err := api.svc.List(ctx.Request().Context(), std.ID)
	if err != nil {
		return errors.Wrap(err, "listing games")
	}
	return ctx.JSON(http.StatusOK, infos)
}

func (api *gameApi) submitScore(ctx echo.Context) error {
	var data SubmitScoreRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitScoreRequest")
	}

	std, err := getOwnedStudent(ctx, data.StudentID, api.stdSvc, api.usrSvc)
	if err != nil {
		return err
	}

	ss := game.SubmitScore{StudentID: std.ID, GameID: data.GameID, Score: data.Score}
	if err := ss.Validate(ctx.Request().Context()); err != nil {
		return err
	}

	res, err := api.svc.SubmitScore(ctx.Request().Context(), ss)
	if err != nil {
		return errors.Wrap(err, "submitting score")
	}
	return ctx.JSON(http.StatusOK, res)
}

// scores lists a learner's plays of one game, latest first.
func (api *gameApi) scores(ctx echo.Context) error {
	std, err := getOwnedStudent(ctx, ctx.QueryParam("student_id"), api.stdSvc, api.usrSvc)
	if err != nil {
		return err
	}

	scores, err := api.svc.Scores(ctx.Request().Context(), std.ID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying scores")
	}
	if scores == nil {
		scores = []game.Score{}
	}
	return ctx.JSON(http.StatusOK, scores)
}

func (api *gameApi) leaderboard(ctx echo.Context) error {
	n, _ := strconv.ParseInt(ctx.QueryParam("limit"), 10, 64)
	if n < 1 || n > 100 {
		n = defaultLeaderboardSize
	}

	entries, err := api.svc.Leaderboard(ctx.Request().Context(), ctx.Param("id"), n)
	if err != nil {
		return errors.Wrap(err, "loading leaderboard")
	}
	if entries == nil {
		entries = []game.LeaderboardEntry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

type SubmitScoreRequest struct {
	StudentID string `json:"student_id"`
	GameID    string `json:"game_id"`
	Score     int    `json:"score"`
}
