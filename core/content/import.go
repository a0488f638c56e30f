package content

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/playlearnspark/backend/core"
)

// ImportOptions configures a lesson spreadsheet import.
// Expected columns: Title | Module | Body | Status.
type ImportOptions struct {
	SheetName  string // defaults to the first sheet
	SkipHeader bool
}

type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportLessons reads lessons from an xlsx spreadsheet and creates or
// updates them, matching existing lessons by slug. Bad rows are skipped
// and reported in ImportResult.Errors.
func (svc *Service) ImportLessons(ctx context.Context, r io.Reader, opts ImportOptions, importedBy string) (ImportResult, error) {
	var res ImportResult

	f, err := excelize.OpenReader(r)
	if err != nil {
		return res, errors.Wrap(err, "opening spreadsheet")
	}
	defer f.Close()

	sheet := opts.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return res, errors.Wrapf(err, "reading sheet %q", sheet)
	}

	start := 0
	if opts.SkipHeader {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		res.TotalProcessed++

		rowErr := func(err error) {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, err))
		}

		if len(row) < 3 {
			rowErr(errors.New("expected at least 3 columns (title, module, body)"))
			continue
		}
		title, module, body := core.CleanString(row[0]), core.CleanString(row[1], true), row[2]
		status := StatusDraft
		if len(row) > 3 && row[3] != "" {
			status = core.CleanString(row[3], true)
		}

		if title == "" {
			rowErr(errors.New("missing title"))
			continue
		}

		les, err := svc.GetBySlug(ctx, core.Slugify(title))
		switch err {
		case nil:
			ul := UpdateLesson{Title: title, Body: body, Status: status}
			if err := ul.Validate(les); err != nil {
				rowErr(err)
				continue
			}
			if _, err := svc.Update(ctx, les.ID, ul, importedBy); err != nil {
				rowErr(err)
				continue
			}
			res.Updated++
		case ErrNotFound:
			nl := NewLesson{Title: title, Module: module, Body: body, Status: status}
			if err := nl.Validate(); err != nil {
				rowErr(err)
				continue
			}
			if _, err := svc.Create(ctx, nl, importedBy); err != nil {
				rowErr(err)
				continue
			}
			res.Created++
		default:
			return res, err
		}
	}
	return res, nil
}
