package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
)

var contextStudentKey = "student"

func adminMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin && contextHasAnyRole(ctx, roles) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// staffMiddleware admits admins and educators; content management is theirs.
func staffMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin || claims.IsEducator {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// ctxStudentMiddleware loads the `:id` Student into the context, admitting
// the owning account and admins only. Unowned profiles read as not found.
func ctxStudentMiddleware(stdSvc *student.Service, usrSvc user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			std, err := getOwnedStudent(ctx, ctx.Param("id"), stdSvc, usrSvc)
			if err != nil {
				return err
			}
			ctx.Set(contextStudentKey, std)
			return next(ctx)
		}
	}
}

// getOwnedStudent fetches a Student the caller may act for: their own
// learner profile, or any profile when the caller is an admin.
func getOwnedStudent(ctx echo.Context, studentID string, stdSvc *student.Service, usrSvc user.Service) (student.Student, error) {
	ctxUsr, err := getContextUser(ctx, usrSvc)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "getting context user")
	}

	if ctxUsr.IsAdmin() {
		std, err := stdSvc.GetByID(ctx.Request().Context(), studentID)
		if err != nil {
			return student.Student{}, err
		}
		return std, nil
	}
	return stdSvc.GetOwned(ctx.Request().Context(), ctxUsr.ID, studentID)
}

func getContextStudent(ctx echo.Context) (student.Student, error) {
	if std, ok := ctx.Get(contextStudentKey).(student.Student); ok {
		return std, nil
	}
	return student.Student{}, errHttpNotFound
}
