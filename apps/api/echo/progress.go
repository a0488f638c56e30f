package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
)

type progressApi struct {
	svc    *progress.Service
	stdSvc *student.Service
	usrSvc user.Service
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := progressApi{
		svc:    deps.ProgressSvc,
		stdSvc: deps.StudentSvc,
		usrSvc: deps.UserSvc,
	}

	pg := g.Group("/progress", jwt)
	pg.POST("/complete", api.complete)
	pg.GET("/:student_id", api.overview)
}

// Handlers

func (api *progressApi) complete(ctx echo.Context) error {
	var data progress.CompleteActivity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CompleteActivity")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	// the caller must own the learner profile they report for
	if _, err := getOwnedStudent(ctx, data.StudentID, api.stdSvc, api.usrSvc); err != nil {
		return err
	}

	res, err := api.svc.Complete(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "recording completion")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *progressApi) overview(ctx echo.Context) error {
	std, err := getOwnedStudent(ctx, ctx.Param("student_id"), api.stdSvc, api.usrSvc)
	if err != nil {
		return err
	}

	overview, err := api.svc.Overview(ctx.Request().Context(), std.ID)
	if err != nil {
		return errors.Wrap(err, "loading progress overview")
	}
	return ctx.JSON(http.StatusOK, overview)
}
