package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/homework"
	"github.com/playlearnspark/backend/core/user"
)

type homeworkApi struct {
	svc    *homework.Service
	usrSvc user.Service
}

func registerHomeworkAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *homework.Service, usrSvc user.Service) {
	api := homeworkApi{svc: svc, usrSvc: usrSvc}

	hg := g.Group("/homework", jwt)
	hg.POST("/analyze", api.analyze)
}

// Handlers

// analyze runs a homework question through the assistant. The daily quota is
// per account; premium accounts get the higher one.
func (api *homeworkApi) analyze(ctx echo.Context) error {
	var data homework.AnalyzeHomework
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnalyzeHomework")
	}
	if err := data.Validate(ctx.Request().Context()); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	analysis, err := api.svc.Analyze(ctx.Request().Context(), ctxUsr, data)
	if err != nil {
		return errors.Wrap(err, "analyzing homework")
	}
	return ctx.JSON(http.StatusOK, analysis)
}
