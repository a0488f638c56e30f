package echoapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
)

var (
	orderingParam = "ordering"

	pageParam       = "page"
	pageSizeParam   = "page_size"
	defaultPageSize = 20
	maxPageSize     = 100
)

var errUnknownOrderingField = errors.New("unknown ordering field")

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind reads the `ordering` query param. Fields are comma-separated, a "-"
// prefix flips the direction. Only fields in orderable are accepted; they end
// up in SQL ORDER BY clauses, so anything else is rejected outright.
func (ord *Ordering) Bind(ctx echo.Context, orderable ...string) error {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return nil
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return nil
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if !isOrderable(field, orderable) {
			return core.NewValidationError(errUnknownOrderingField, core.FieldError{
				Field: orderingParam,
				Error: fmt.Sprintf("cannot order by %q", field),
			})
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
	return nil
}

func isOrderable(field string, orderable []string) bool {
	for _, col := range orderable {
		if field == col {
			return true
		}
	}
	return false
}

// bindPagination reads `page` / `page_size` query params into a LIMIT/OFFSET
// window. Out-of-range values fall back to defaults.
func bindPagination(ctx echo.Context) core.Pagination {
	page, _ := strconv.Atoi(ctx.QueryParam(pageParam))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(ctx.QueryParam(pageSizeParam))
	if size < 1 {
		size = defaultPageSize
	} else if size > maxPageSize {
		size = maxPageSize
	}
	return core.Pagination{Limit: size, Offset: (page - 1) * size}
}
