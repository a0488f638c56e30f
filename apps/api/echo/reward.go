package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
)

type rewardApi struct {
	svc    *reward.Service
	stdSvc *student.Service
	usrSvc user.Service
}

func registerRewardAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := rewardApi{
		svc:    deps.RewardSvc,
		stdSvc: deps.StudentSvc,
		usrSvc: deps.UserSvc,
	}

	rg := g.Group("/rewards")
	rg.GET("", api.catalog) // public, guests browse too
	rg.POST("/redeem", api.redeem, jwt)
	rg.GET("/redemptions/:student_id", api.redemptions, jwt)
	rg.GET("/ledger/:student_id", api.ledger, jwt)

	ag := g.Group("/achievements")
	ag.GET("", api.achievementCatalog) // public
	ag.GET("/:student_id", api.earnedAchievements, jwt)
}

// Handlers

// catalog lists redeemable rewards; `age` and `category` query params narrow
// it the way the child's shop view does.
func (api *rewardApi) catalog(ctx echo.Context) error {
	age, _ := strconv.Atoi(ctx.QueryParam("age"))
	category := reward.Category(ctx.QueryParam("category"))
	return ctx.JSON(http.StatusOK, api.svc.Catalog(age, time.Now(), category))
}

func (api *rewardApi) redeem(ctx echo.Context) error {
	var data RedeemRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RedeemRequest")
	}

	std, err := getOwnedStudent(ctx, data.StudentID, api.stdSvc, api.usrSvc)
	if err != nil {
		return err
	}

	rr := reward.RedeemReward{StudentID: std.ID, RewardID: data.RewardID}
	if err := rr.Validate(ctx.Request().Context()); err != nil {
		return err
	}

	red, balance, err := api.svc.Redeem(ctx.Request().Context(), rr, std.Age)
	if err != nil {
		return errors.Wrap(err, "redeeming reward")
	}
	return ctx.JSON(http.StatusOK, RedeemResponse{Redemption: red, PointsBalance: balance})
}

func (api *rewardApi) redemptions(ctx echo.Context) error {
	std, err := getOwnedStudent(ctx, ctx.Param("student_id"), api.stdSvc, api.usrSvc)
	if err != nil {
		return err
	}

	reds, err := api.svc.Redemptions(ctx.Request().Context(), std.ID)
	if err != nil {
		return errors.Wrap(err, "querying redemptions")
	}
	if reds == nil {
		reds = []reward.Redemption{}
	}
	return ctx.JSON(http.StatusOK, reds)
}

func (api *rewardApi) ledger(ctx echo.Context) error {
	std, err := getOwnedStudent(ctx, ctx.Param("student_id"), api.stdSvc, api.usrSvc)
	if err != nil {
		return err
	}

	entries, err := api.svc.Ledger(ctx.Request().Context(), std.ID, bindPagination(ctx))
	if err != nil {
		return errors.Wrap(err, "querying point entries")
	}
	if entries == nil {
		entries = []reward.PointEntry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *rewardApi) achievementCatalog(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, reward.Achievements)
}

func (api *rewardApi) earnedAchievements(ctx echo.Context) error {
	std, err := getOwnedStudent(ctx, ctx.Param("student_id"), api.stdSvc, api.usrSvc)
	if err != nil {
		return err
	}

	achvs, err := api.svc.EarnedAchievements(ctx.Request().Context(), std.ID)
	if err != nil {
		return errors.Wrap(err, "querying achievements")
	}
	if achvs == nil {
		achvs = []reward.EarnedAchievement{}
	}
	return ctx.JSON(http.StatusOK, achvs)
}

type (
	RedeemRequest struct {
		StudentID string `json:"student_id"`
		RewardID  string `json:"reward_id"`
	}

	RedeemResponse struct {
		Redemption    reward.Redemption `json:"redemption"`
		PointsBalance int               `json:"points_balance"`
	}
)
