package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
)

type studentApi struct {
	svc         *student.Service
	usrSvc      user.Service
	progressSvc *progress.Service
	rewardSvc   *reward.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := studentApi{
		svc:         deps.StudentSvc,
		usrSvc:      deps.UserSvc,
		progressSvc: deps.ProgressSvc,
		rewardSvc:   deps.RewardSvc,
	}

	sg := g.Group("/students", jwt)
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/avatars", api.queryAvatars)

	dg := sg.Group("/:id", ctxStudentMiddleware(api.svc, api.usrSvc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/summary", api.summary)
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	std, err := api.svc.Create(ctx.Request().Context(), ctxUsr.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

// query lists the caller's learner profiles; admins see everyone's.
func (api *studentApi) query(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var students []student.Student
	if ctxUsr.IsAdmin() {
		students, err = api.svc.QueryAll(ctx.Request().Context())
	} else {
		students, err = api.svc.QueryByParent(ctx.Request().Context(), ctxUsr.ID)
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) queryAvatars(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, student.Avatars)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return err
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(std); err != nil {
		return err
	}

	std, err = api.svc.Update(ctx.Request().Context(), std.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), std.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// summary composes the parent-dashboard view of one learner: profile,
// progress overview, point balance and earned achievements.
func (api *studentApi) summary(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	rctx := ctx.Request().Context()

	overview, err := api.progressSvc.Overview(rctx, std.ID)
	if err != nil {
		return errors.Wrap(err, "loading progress overview")
	}
	balance, err := api.rewardSvc.Balance(rctx, std.ID)
	if err != nil {
		return errors.Wrap(err, "loading balance")
	}
	achvs, err := api.rewardSvc.EarnedAchievements(rctx, std.ID)
	if err != nil {
		return errors.Wrap(err, "loading achievements")
	}
	if achvs == nil {
		achvs = []reward.EarnedAchievement{}
	}

	return ctx.JSON(http.StatusOK, StudentSummaryResponse{
		Student:       std,
		Progress:      overview,
		PointsBalance: balance,
		Achievements:  achvs,
	})
}

type StudentSummaryResponse struct {
	Student       student.Student            `json:"student"`
	Progress      progress.Overview          `json:"progress"`
	PointsBalance int                        `json:"points_balance"`
	Achievements  []reward.EarnedAchievement `json:"achievements"`
}
