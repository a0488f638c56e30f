package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/playlearnspark/backend/core/student"
)

type studentRow struct {
	ID            string    `db:"id"`
	ParentID      string    `db:"parent_id"`
	Name          string    `db:"name"`
	Age           int       `db:"age"`
	Grade         string    `db:"grade"`
	Avatar        string    `db:"avatar"`
	PointsBalance int       `db:"points_balance"`
	StreakCurrent int       `db:"streak_current"`
	StreakLongest int       `db:"streak_longest"`
	StreakLastDay null.Time `db:"streak_last_day"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r studentRow) unrow() student.Student {
	return student.Student{
		ID:            r.ID,
		ParentID:      r.ParentID,
		Name:          r.Name,
		Age:           r.Age,
		Grade:         r.Grade,
		Avatar:        r.Avatar,
		PointsBalance: r.PointsBalance,
		StreakCurrent: r.StreakCurrent,
		StreakLongest: r.StreakLongest,
		StreakLastDay: r.StreakLastDay.Time,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func rowFromStudent(std student.Student) studentRow {
	return studentRow{
		ID:            std.ID,
		ParentID:      std.ParentID,
		Name:          std.Name,
		Age:           std.Age,
		Grade:         std.Grade,
		Avatar:        std.Avatar,
		PointsBalance: std.PointsBalance,
		StreakCurrent: std.StreakCurrent,
		StreakLongest: std.StreakLongest,
		StreakLastDay: null.NewTime(std.StreakLastDay.UTC(), !std.StreakLastDay.IsZero()),
		CreatedAt:     std.CreatedAt.UTC(),
		UpdatedAt:     std.UpdatedAt.UTC(),
	}
}

func unrowStudentSlice(rows []studentRow) []student.Student {
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.unrow())
	}
	return students
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	std.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO student (id, parent_id, name, age, grade, avatar, points_balance,
		                     streak_current, streak_longest, streak_last_day, created_at, updated_at)
		VALUES (:id, :parent_id, :name, :age, :grade, :avatar, :points_balance,
		        :streak_current, :streak_longest, :streak_last_day, :created_at, :updated_at)`,
		rowFromStudent(std))
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	if _, err := uuid.Parse(id); err != nil {
		return student.Student{}, student.ErrNotFound
	}
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by ID")
	}
	return row.unrow(), nil
}

func (repo studentRepository) QueryStudentsByParent(ctx context.Context, parentID string) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM student WHERE parent_id = $1 ORDER BY created_at`, parentID); err != nil {
		return nil, errors.Wrap(err, "querying students by parent")
	}
	return unrowStudentSlice(rows), nil
}

func (repo studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM student ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return unrowStudentSlice(rows), nil
}

func (repo studentRepository) CountStudentsByParent(ctx context.Context, parentID string) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM student WHERE parent_id = $1`, parentID); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return count, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE student
		SET name = :name, age = :age, grade = :grade, avatar = :avatar, updated_at = :updated_at
		WHERE id = :id`,
		rowFromStudent(std))
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.GetStudentByID(ctx, std.ID)
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM student WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "expanding student delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}
