package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/content"
)

var lessonOrderable = []string{"slug", "title", "module", "status", "revision", "created_at", "updated_at"}

type contentApi struct {
	svc *content.Service
}

func registerContentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *content.Service) {
	api := contentApi{svc: svc}

	cg := g.Group("/content")

	// the learning catalog ships with the binary and is public
	cg.GET("/languages", api.queryLanguages)
	cg.GET("/languages/:code", api.retrieveLanguage)
	cg.GET("/activities", api.queryActivities)
	cg.GET("/modules", api.queryModules)

	// learner-facing lessons: published only
	cg.GET("/lessons", api.queryPublished)
	cg.GET("/lessons/:slug", api.retrievePublished)

	// lesson management for admins and educators
	mg := cg.Group("/manage/lessons", jwt, staffMiddleware())
	mg.POST("", api.create)
	mg.GET("", api.query)
	mg.DELETE("", api.destroyMultiple)
	mg.POST("/import", api.importLessons)
	mg.GET("/:id", api.retrieve)
	mg.PUT("/:id", api.update)
	mg.GET("/:id/revisions", api.queryRevisions)
	mg.GET("/:id/compare", api.compareRevisions)
}

// Handlers

func (api *contentApi) queryLanguages(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, content.Languages)
}

func (api *contentApi) retrieveLanguage(ctx echo.Context) error {
	lang, ok := content.FindLanguage(ctx.Param("code"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, lang)
}

// queryActivities filters the activity catalog by `category` and `age`.
func (api *contentApi) queryActivities(ctx echo.Context) error {
	age, _ := strconv.Atoi(ctx.QueryParam("age"))
	category := content.Category(ctx.QueryParam("category"))
	return ctx.JSON(http.StatusOK, content.FilterActivities(category, age))
}

func (api *contentApi) queryModules(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, content.Modules())
}

func (api *contentApi) queryPublished(ctx echo.Context) error {
	lessons, err := api.svc.Published(ctx.Request().Context(), ctx.QueryParam("module"))
	if err != nil {
		return errors.Wrap(err, "querying published lessons")
	}
	if lessons == nil {
		lessons = []content.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *contentApi) retrievePublished(ctx echo.Context) error {
	les, err := api.svc.GetBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return errors.Wrap(err, "finding lesson by slug")
	}
	if !les.IsPublished() {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *contentApi) create(ctx echo.Context) error {
	var data content.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	les, err := api.svc.Create(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, les)
}

func (api *contentApi) query(ctx echo.Context) error {
	filter := new(content.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []content.Lesson{})
	}
	ordering := new(Ordering)
	if err := ordering.Bind(ctx, lessonOrderable...); err != nil {
		return err
	}

	lessons, err := api.svc.Filter(ctx.Request().Context(), *filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []content.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *contentApi) retrieve(ctx echo.Context) error {
	les, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding lesson by ID")
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *contentApi) update(ctx echo.Context) error {
	les, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding lesson by ID")
	}

	var data content.UpdateLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLesson")
	}
	if err := data.Validate(les); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	les, err = api.svc.Update(ctx.Request().Context(), les.ID, data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *contentApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting lessons")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contentApi) queryRevisions(ctx echo.Context) error {
	revs, err := api.svc.Revisions(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying revisions")
	}
	if revs == nil {
		revs = []content.LessonRevision{}
	}
	return ctx.JSON(http.StatusOK, revs)
}

// compareRevisions diffs two revisions of a lesson: `from` is required,
// `to` defaults to the latest revision.
func (api *contentApi) compareRevisions(ctx echo.Context) error {
	from, err := strconv.Atoi(ctx.QueryParam("from"))
	if err != nil || from < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "`from` must be a positive revision number")
	}
	to, _ := strconv.Atoi(ctx.QueryParam("to"))

	diff, err := api.svc.Compare(ctx.Request().Context(), ctx.Param("id"), from, to)
	if err != nil {
		return errors.Wrap(err, "comparing revisions")
	}
	return ctx.JSON(http.StatusOK, diff)
}

// importLessons ingests an uploaded xlsx spreadsheet of lessons.
func (api *contentApi) importLessons(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "`file` upload is required")
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer f.Close()

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	opts := content.ImportOptions{
		SheetName:  ctx.FormValue("sheet"),
		SkipHeader: ctx.FormValue("skip_header") != "false",
	}
	res, err := api.svc.ImportLessons(ctx.Request().Context(), f, opts, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "importing lessons")
	}
	return ctx.JSON(http.StatusOK, res)
}
