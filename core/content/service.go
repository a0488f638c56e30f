package content

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/playlearnspark/backend/core"
)

var (
	// errors
	ErrNotFound         = errors.New("lesson not found")
	ErrSlugExists       = errors.New("a lesson with this slug already exists")
	ErrRevisionNotFound = errors.New("revision not found")
)

type (
	Repository interface {
		CreateLesson(ctx context.Context, les Lesson) (Lesson, error)
		GetLessonByID(ctx context.Context, id string) (Lesson, error)
		GetLessonBySlug(ctx context.Context, slug string) (Lesson, error)
		// FilterLessons applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Lesson.Title or Lesson.Body.
		FilterLessons(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Lesson, error)
		UpdateLesson(ctx context.Context, les Lesson) (Lesson, error)
		DeleteLessonsByID(ctx context.Context, ids ...string) error

		CreateRevision(ctx context.Context, rev LessonRevision) (LessonRevision, error)
		QueryRevisions(ctx context.Context, lessonID string) ([]LessonRevision, error)
		GetRevision(ctx context.Context, lessonID string, revision int) (LessonRevision, error)
	}

	Service struct {
		repo Repository
	}

	// RevisionDiff is the result of comparing two revisions of a Lesson.
	RevisionDiff struct {
		LessonID string     `json:"lesson_id"`
		From     int        `json:"from"`
		To       int        `json:"to"`
		Diff     DiffResult `json:"diff"`
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nl NewLesson, createdBy string) (Lesson, error) {
	slug := core.Slugify(nl.Title)
	if _, err := svc.repo.GetLessonBySlug(ctx, slug); err == nil {
		return Lesson{}, core.NewValidationError(ErrSlugExists, core.FieldError{Field: "title", Error: ErrSlugExists.Error()})
	} else if err != ErrNotFound {
		return Lesson{}, err
	}

	now := time.Now().UTC()
	les := Lesson{
		Slug:      slug,
		Title:     nl.Title,
		Module:    nl.Module,
		Body:      nl.Body,
		Status:    nl.Status,
		Revision:  1,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	les, err := svc.repo.CreateLesson(ctx, les)
	if err != nil {
		return Lesson{}, err
	}
	if _, err := svc.repo.CreateRevision(ctx, svc.snapshot(les, createdBy)); err != nil {
		return Lesson{}, errors.Wrap(err, "recording revision")
	}
	return les, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Lesson, error) {
	return svc.repo.GetLessonByID(ctx, id)
}

func (svc *Service) GetBySlug(ctx context.Context, slug string) (Lesson, error) {
	return svc.repo.GetLessonBySlug(ctx, core.CleanString(slug, true /* lower */))
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Lesson, error) {
	filter.Clean()
	return svc.repo.FilterLessons(ctx, filter, ordering...)
}

// Published returns published lessons only; this is the learner-facing view.
func (svc *Service) Published(ctx context.Context, module string) ([]Lesson, error) {
	return svc.repo.FilterLessons(ctx, QueryFilter{Module: core.CleanString(module, true), Status: StatusPublished})
}

// Update modifies a Lesson; a change to its title or body bumps the
// revision counter and records a snapshot.
func (svc *Service) Update(ctx context.Context, id string, ul UpdateLesson, updatedBy string) (Lesson, error) {
	les, err := svc.repo.GetLessonByID(ctx, id)
	if err != nil {
		return Lesson{}, err
	}

	contentChanged := ul.Title != les.Title || ul.Body != les.Body
	les.Title = ul.Title
	les.Body = ul.Body
	les.Status = ul.Status
	les.UpdatedAt = time.Now().UTC()
	if contentChanged {
		les.Revision++
	}

	les, err = svc.repo.UpdateLesson(ctx, les)
	if err != nil {
		return Lesson{}, err
	}
	if contentChanged {
		if _, err := svc.repo.CreateRevision(ctx, svc.snapshot(les, updatedBy)); err != nil {
			return Lesson{}, errors.Wrap(err, "recording revision")
		}
	}
	return les, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteLessonsByID(ctx, ids...)
}

func (svc *Service) Revisions(ctx context.Context, lessonID string) ([]LessonRevision, error) {
	if _, err := svc.repo.GetLessonByID(ctx, lessonID); err != nil {
		return nil, err
	}
	return svc.repo.QueryRevisions(ctx, lessonID)
}

// Compare diffs two revisions of a Lesson; `to` == 0 means the latest one.
func (svc *Service) Compare(ctx context.Context, lessonID string, from, to int) (RevisionDiff, error) {
	les, err := svc.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return RevisionDiff{}, err
	}
	if to == 0 {
		to = les.Revision
	}

	fromRev, err := svc.repo.GetRevision(ctx, lessonID, from)
	if err != nil {
		return RevisionDiff{}, err
	}
	toRev, err := svc.repo.GetRevision(ctx, lessonID, to)
	if err != nil {
		return RevisionDiff{}, err
	}

	return RevisionDiff{
		LessonID: lessonID,
		From:     fromRev.Revision,
		To:       toRev.Revision,
		Diff:     DiffText(fromRev.Body, toRev.Body),
	}, nil
}

func (svc *Service) snapshot(les Lesson, by string) LessonRevision {
	return LessonRevision{
		LessonID:  les.ID,
		Revision:  les.Revision,
		Title:     les.Title,
		Body:      les.Body,
		CreatedBy: by,
		CreatedAt: les.UpdatedAt,
	}
}
