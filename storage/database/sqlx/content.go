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
	"github.com/playlearnspark/backend/core/content"
)

type lessonRow struct {
	ID        string      `db:"id"`
	Slug      string      `db:"slug"`
	Title     string      `db:"title"`
	Module    string      `db:"module"`
	Body      string      `db:"body"`
	Status    string      `db:"status"`
	Revision  int         `db:"revision"`
	CreatedBy null.String `db:"created_by"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (r lessonRow) unrow() content.Lesson {
	return content.Lesson{
		ID:        r.ID,
		Slug:      r.Slug,
		Title:     r.Title,
		Module:    r.Module,
		Body:      r.Body,
		Status:    r.Status,
		Revision:  r.Revision,
		CreatedBy: r.CreatedBy.String,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func rowFromLesson(les content.Lesson) lessonRow {
	return lessonRow{
		ID:        les.ID,
		Slug:      les.Slug,
		Title:     les.Title,
		Module:    les.Module,
		Body:      les.Body,
		Status:    les.Status,
		Revision:  les.Revision,
		CreatedBy: null.NewString(les.CreatedBy, les.CreatedBy != ""),
		CreatedAt: les.CreatedAt.UTC(),
		UpdatedAt: les.UpdatedAt.UTC(),
	}
}

type lessonRevisionRow struct {
	ID        string      `db:"id"`
	LessonID  string      `db:"lesson_id"`
	Revision  int         `db:"revision"`
	Title     string      `db:"title"`
	Body      string      `db:"body"`
	CreatedBy null.String `db:"created_by"`
	CreatedAt time.Time   `db:"created_at"`
}

func (r lessonRevisionRow) unrow() content.LessonRevision {
	return content.LessonRevision{
		ID:        r.ID,
		LessonID:  r.LessonID,
		Revision:  r.Revision,
		Title:     r.Title,
		Body:      r.Body,
		CreatedBy: r.CreatedBy.String,
		CreatedAt: r.CreatedAt,
	}
}

type lessonRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *sqlx.DB) *lessonRepository {
	return &lessonRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to content.ErrNotFound
func (repo lessonRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return content.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo lessonRepository) CreateLesson(ctx context.Context, les content.Lesson) (content.Lesson, error) {
	les.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO lesson (id, slug, title, module, body, status, revision, created_by, created_at, updated_at)
		VALUES (:id, :slug, :title, :module, :body, :status, :revision, :created_by, :created_at, :updated_at)`,
		rowFromLesson(les))
	if err != nil {
		return content.Lesson{}, errors.Wrap(err, "inserting lesson")
	}
	return les, nil
}

func (repo lessonRepository) GetLessonByID(ctx context.Context, id string) (content.Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return content.Lesson{}, content.ErrNotFound
	}
	var row lessonRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM lesson WHERE id = $1`, id); err != nil {
		return content.Lesson{}, repo.trapNoRowsErr(err, "finding lesson by ID")
	}
	return row.unrow(), nil
}

func (repo lessonRepository) GetLessonBySlug(ctx context.Context, slug string) (content.Lesson, error) {
	var row lessonRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM lesson WHERE slug = $1`, slug); err != nil {
		return content.Lesson{}, repo.trapNoRowsErr(err, "finding lesson by slug")
	}
	return row.unrow(), nil
}

func (repo lessonRepository) FilterLessons(ctx context.Context, filter content.QueryFilter, ordering ...core.DBOrdering) ([]content.Lesson, error) {
	conds := []string{"TRUE"}
	var args []interface{}

	if filter.Search != "" {
		conds = append(conds, "(title ILIKE ? OR body ILIKE ?)")
		val := "%" + filter.Search + "%"
		args = append(args, val, val)
	}
	if filter.Module != "" {
		conds = append(conds, "module = ?")
		args = append(args, filter.Module)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT * FROM lesson WHERE ` + strings.Join(conds, " AND ") + orderBy(ordering, "created_at ASC")
	var rows []lessonRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "filtering lessons")
	}
	lessons := make([]content.Lesson, 0, len(rows))
	for _, row := range rows {
		lessons = append(lessons, row.unrow())
	}
	return lessons, nil
}

func (repo lessonRepository) UpdateLesson(ctx context.Context, les content.Lesson) (content.Lesson, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE lesson
		SET title = :title, module = :module, body = :body, status = :status,
		    revision = :revision, updated_at = :updated_at
		WHERE id = :id`,
		rowFromLesson(les))
	if err != nil {
		return content.Lesson{}, errors.Wrap(err, "updating lesson")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return content.Lesson{}, content.ErrNotFound
	}
	return les, nil
}

func (repo lessonRepository) DeleteLessonsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	// revisions cascade
	query, args, err := sqlx.In(`DELETE FROM lesson WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "expanding lesson delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting lessons")
	}
	return nil
}

func (repo lessonRepository) CreateRevision(ctx context.Context, rev content.LessonRevision) (content.LessonRevision, error) {
	rev.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO lesson_revision (id, lesson_id, revision, title, body, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rev.ID, rev.LessonID, rev.Revision, rev.Title, rev.Body,
		null.NewString(rev.CreatedBy, rev.CreatedBy != ""), rev.CreatedAt.UTC())
	if err != nil {
		return content.LessonRevision{}, errors.Wrap(err, "inserting lesson revision")
	}
	return rev, nil
}

func (repo lessonRepository) QueryRevisions(ctx context.Context, lessonID string) ([]content.LessonRevision, error) {
	var rows []lessonRevisionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM lesson_revision WHERE lesson_id = $1 ORDER BY revision`, lessonID)
	if err != nil {
		return nil, errors.Wrap(err, "querying lesson revisions")
	}
	revs := make([]content.LessonRevision, 0, len(rows))
	for _, row := range rows {
		revs = append(revs, row.unrow())
	}
	return revs, nil
}

func (repo lessonRepository) GetRevision(ctx context.Context, lessonID string, revision int) (content.LessonRevision, error) {
	var row lessonRevisionRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM lesson_revision WHERE lesson_id = $1 AND revision = $2`, lessonID, revision)
	if err == sql.ErrNoRows {
		return content.LessonRevision{}, content.ErrRevisionNotFound
	}
	if err != nil {
		return content.LessonRevision{}, errors.Wrap(err, "finding lesson revision")
	}
	return row.unrow(), nil
}
