package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/feedback"
)

type feedbackRow struct {
	ID         string      `db:"id"`
	UserID     null.String `db:"user_id"`
	AuthorName string      `db:"author_name"`
	Email      string      `db:"email"`
	Rating     int         `db:"rating"`
	Category   string      `db:"category"`
	Message    string      `db:"message"`
	Status     string      `db:"status"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`
}

func (r feedbackRow) unrow() feedback.Feedback {
	return feedback.Feedback{
		ID:        r.ID,
		UserID:    r.UserID.String,
		Name:      r.AuthorName,
		Email:     r.Email,
		Rating:    r.Rating,
		Category:  r.Category,
		Message:   r.Message,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func rowFromFeedback(fb feedback.Feedback) feedbackRow {
	return feedbackRow{
		ID:         fb.ID,
		UserID:     null.NewString(fb.UserID, fb.UserID != ""),
		AuthorName: fb.Name,
		Email:      fb.Email,
		Rating:     fb.Rating,
		Category:   fb.Category,
		Message:    fb.Message,
		Status:     fb.Status,
		CreatedAt:  fb.CreatedAt.UTC(),
		UpdatedAt:  fb.UpdatedAt.UTC(),
	}
}

type feedbackRepository struct {
	db *sqlx.DB
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

func NewFeedbackRepository(db *sqlx.DB) *feedbackRepository {
	return &feedbackRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to feedback.ErrNotFound
func (repo feedbackRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return feedback.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo feedbackRepository) CreateFeedback(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	fb.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO feedback (id, user_id, author_name, email, rating, category, message, status, created_at, updated_at)
		VALUES (:id, :user_id, :author_name, :email, :rating, :category, :message, :status, :created_at, :updated_at)`,
		rowFromFeedback(fb))
	if err != nil {
		return feedback.Feedback{}, errors.Wrap(err, "inserting feedback")
	}
	return fb, nil
}

func (repo feedbackRepository) GetFeedbackByID(ctx context.Context, id string) (feedback.Feedback, error) {
	if _, err := uuid.Parse(id); err != nil {
		return feedback.Feedback{}, feedback.ErrNotFound
	}
	var row feedbackRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM feedback WHERE id = $1`, id); err != nil {
		return feedback.Feedback{}, repo.trapNoRowsErr(err, "finding feedback by ID")
	}
	return row.unrow(), nil
}

func (repo feedbackRepository) FilterFeedback(
	ctx context.Context,
	filter feedback.QueryFilter,
	p core.Pagination,
	ordering ...core.DBOrdering,
) ([]feedback.Feedback, int, error) {
	conds := []string{"TRUE"}
	var args []interface{}

	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Rating != 0 {
		conds = append(conds, "rating = ?")
		args = append(args, filter.Rating)
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := repo.db.GetContext(ctx, &total,
		repo.db.Rebind(`SELECT COUNT(*) FROM feedback`+where), args...); err != nil {
		return nil, 0, errors.Wrap(err, "counting feedback")
	}

	query := `SELECT * FROM feedback` + where + orderBy(ordering, "created_at DESC") + limitOffset(p)
	var rows []feedbackRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, 0, errors.Wrap(err, "filtering feedback")
	}

	fbs := make([]feedback.Feedback, 0, len(rows))
	for _, row := range rows {
		fbs = append(fbs, row.unrow())
	}
	return fbs, total, nil
}

func (repo feedbackRepository) UpdateFeedbackStatus(ctx context.Context, id, status string) (feedback.Feedback, error) {
	if _, err := uuid.Parse(id); err != nil {
		return feedback.Feedback{}, feedback.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx,
		`UPDATE feedback SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return feedback.Feedback{}, errors.Wrap(err, "updating feedback status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return feedback.Feedback{}, feedback.ErrNotFound
	}
	return repo.GetFeedbackByID(ctx, id)
}

func (repo feedbackRepository) DeleteFeedbackByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM feedback WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "expanding feedback delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting feedback")
	}
	return nil
}
