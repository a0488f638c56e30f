package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrMaxStudents = errors.New("maximum number of learner profiles reached")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		QueryStudentsByParent(ctx context.Context, parentID string) ([]Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		CountStudentsByParent(ctx context.Context, parentID string) (int, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, parentID string, ns NewStudent) (Student, error) {
	count, err := svc.repo.CountStudentsByParent(ctx, parentID)
	if err != nil {
		return Student{}, errors.Wrap(err, "counting students")
	}
	if count >= MaxPerParent {
		return Student{}, core.NewValidationError(ErrMaxStudents)
	}

	now := time.Now().UTC()
	std := Student{
		ParentID:  parentID,
		Name:      ns.Name,
		Age:       ns.Age,
		Grade:     ns.Grade,
		Avatar:    ns.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

// GetOwned fetches a Student ensuring it belongs to the given parent;
// unowned profiles are reported as not found.
func (svc *Service) GetOwned(ctx context.Context, parentID, id string) (Student, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if std.ParentID != parentID {
		return Student{}, ErrNotFound
	}
	return std, nil
}

func (svc *Service) QueryByParent(ctx context.Context, parentID string) ([]Student, error) {
	return svc.repo.QueryStudentsByParent(ctx, parentID)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	std.Name = us.Name
	std.Age = us.Age
	std.Grade = us.Grade
	std.Avatar = us.Avatar
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}
