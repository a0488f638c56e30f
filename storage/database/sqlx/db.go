// Package sqlxrepos implements the core repositories on postgres via sqlx.
package sqlxrepos

import (
	"fmt"
	"strings"

	"github.com/playlearnspark/backend/core"
)

// orderBy renders an ORDER BY clause, falling back to def when no ordering is given.
func orderBy(ordering []core.DBOrdering, def string) string {
	if len(ordering) == 0 {
		return " ORDER BY " + def
	}
	parts := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		parts = append(parts, ord.String())
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// limitOffset renders a LIMIT/OFFSET window; empty for a zero Pagination.
func limitOffset(p core.Pagination) string {
	var clause string
	if p.Limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", p.Limit)
	}
	if p.Offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", p.Offset)
	}
	return clause
}
