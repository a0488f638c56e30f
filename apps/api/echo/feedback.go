package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/feedback"
)

const defaultPublishedFeedback = 6

var feedbackOrderable = []string{"author_name", "rating", "category", "status", "created_at", "updated_at"}

type feedbackApi struct {
	svc *feedback.Service
}

func registerFeedbackAPI(g *echo.Group, jwt, optJWT echo.MiddlewareFunc, svc *feedback.Service) {
	api := feedbackApi{svc: svc}

	fg := g.Group("/feedback")

	// anyone can leave feedback; a token, when sent, attributes it
	fg.POST("", api.submit, optJWT)
	fg.GET("", api.queryPublished)

	// moderation
	ag := fg.Group("", jwt, adminMiddleware())
	ag.GET("/all", api.query)
	ag.PUT("/:id/status", api.setStatus)
	ag.DELETE("", api.destroyMultiple)
}

// Handlers

func (api *feedbackApi) submit(ctx echo.Context) error {
	var data feedback.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeedback")
	}
	if err := data.Validate(ctx.Request().Context()); err != nil {
		return err
	}

	var userID string
	if claims, err := getContextClaims(ctx); err == nil && !claims.IsGuest {
		userID = claims.Subject
		if data.Name == "" {
			data.Name = claims.Username
		}
	}

	fb, err := api.svc.Submit(ctx.Request().Context(), data, userID)
	if err != nil {
		return errors.Wrap(err, "submitting feedback")
	}
	return ctx.JSON(http.StatusCreated, fb)
}

// queryPublished feeds the public testimonial strip.
func (api *feedbackApi) queryPublished(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	if limit < 1 || limit > 50 {
		limit = defaultPublishedFeedback
	}

	fbs, err := api.svc.Published(ctx.Request().Context(), limit)
	if err != nil {
		return errors.Wrap(err, "querying published feedback")
	}
	if fbs == nil {
		fbs = []feedback.Feedback{}
	}
	return ctx.JSON(http.StatusOK, fbs)
}

func (api *feedbackApi) query(ctx echo.Context) error {
	filter := new(feedback.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, FeedbackPageResponse{Items: []feedback.Feedback{}})
	}
	ordering := new(Ordering)
	if err := ordering.Bind(ctx, feedbackOrderable...); err != nil {
		return err
	}

	fbs, total, err := api.svc.Filter(ctx.Request().Context(), *filter, bindPagination(ctx), ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying feedback")
	}
	if fbs == nil {
		fbs = []feedback.Feedback{}
	}
	return ctx.JSON(http.StatusOK, FeedbackPageResponse{Items: fbs, Total: total})
}

func (api *feedbackApi) setStatus(ctx echo.Context) error {
	var data feedback.UpdateFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateFeedback")
	}
	if err := data.Validate(ctx.Request().Context()); err != nil {
		return err
	}

	fb, err := api.svc.SetStatus(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "setting feedback status")
	}
	return ctx.JSON(http.StatusOK, fb)
}

func (api *feedbackApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting feedback")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type FeedbackPageResponse struct {
	Items []feedback.Feedback `json:"items"`
	Total int                 `json:"total"`
}
