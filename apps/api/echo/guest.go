package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/guest"
)

type guestApi struct {
	svc *guest.Service
}

func registerGuestAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *guest.Service) {
	api := guestApi{svc: svc}

	gg := g.Group("/guest")
	gg.POST("/session", api.start)

	// session endpoints require the guest token issued at start
	sg := gg.Group("/session", jwt)
	sg.GET("", api.retrieve)
	sg.POST("/progress", api.recordProgress)
	sg.DELETE("", api.end)
}

// Handlers

// start opens a try-before-signup session and hands back a token scoped to it.
func (api *guestApi) start(ctx echo.Context) error {
	s, err := api.svc.Start(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "starting guest session")
	}

	token, err := GenerateToken(GetGuestClaims(s.ID))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, GuestSessionResponse{Session: s, Token: token})
}

func (api *guestApi) retrieve(ctx echo.Context) error {
	sessionID, err := contextGuestSessionID(ctx)
	if err != nil {
		return err
	}

	s, err := api.svc.Get(ctx.Request().Context(), sessionID)
	if err != nil {
		return errors.Wrap(err, "loading guest session")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *guestApi) recordProgress(ctx echo.Context) error {
	sessionID, err := contextGuestSessionID(ctx)
	if err != nil {
		return err
	}

	var data GuestProgressRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GuestProgressRequest")
	}

	res, err := api.svc.RecordProgress(ctx.Request().Context(), sessionID, data.ActivityID)
	if err != nil {
		return errors.Wrap(err, "recording guest progress")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *guestApi) end(ctx echo.Context) error {
	sessionID, err := contextGuestSessionID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.End(ctx.Request().Context(), sessionID); err != nil {
		return errors.Wrap(err, "ending guest session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// contextGuestSessionID extracts the session ID from a guest-scoped token;
// regular user tokens are rejected here.
func contextGuestSessionID(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}
	if !claims.IsGuest || claims.Subject == "" {
		return "", errHttpForbidden
	}
	return claims.Subject, nil
}

type (
	GuestSessionResponse struct {
		Session guest.Session `json:"session"`
		Token   string        `json:"token"`
	}

	GuestProgressRequest struct {
		ActivityID string `json:"activity_id"`
	}
)
