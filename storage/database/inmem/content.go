package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/content"
)

type lessonRepository struct {
	db *lessonTable
}

var _ content.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *DB) *lessonRepository {
	return &lessonRepository{db: db.lesson}
}

func (repo *lessonRepository) query() []content.Lesson {
	lessons := make([]content.Lesson, 0, len(repo.db.t))
	for _, les := range repo.db.t {
		lessons = append(lessons, *les)
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].CreatedAt.Before(lessons[j].CreatedAt) })
	return lessons
}

func (repo *lessonRepository) CreateLesson(ctx context.Context, les content.Lesson) (content.Lesson, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	les.ID = uuid.New().String()
	repo.db.t[les.ID] = &les
	return les, nil
}

func (repo *lessonRepository) GetLessonByID(ctx context.Context, id string) (content.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if les, ok := repo.db.t[id]; ok {
		return *les, nil
	}
	return content.Lesson{}, content.ErrNotFound
}

func (repo *lessonRepository) GetLessonBySlug(ctx context.Context, slug string) (content.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, les := range repo.db.t {
		if les.Slug == slug {
			return *les, nil
		}
	}
	return content.Lesson{}, content.ErrNotFound
}

func (repo *lessonRepository) FilterLessons(ctx context.Context, filter content.QueryFilter, ordering ...core.DBOrdering) ([]content.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	lessons := make([]content.Lesson, 0)
	search := strings.ToLower(filter.Search)
	for _, les := range repo.query() {
		if search != "" &&
			!strings.Contains(strings.ToLower(les.Title), search) &&
			!strings.Contains(strings.ToLower(les.Body), search) {
			continue
		}
		if filter.Module != "" && les.Module != filter.Module {
			continue
		}
		if filter.Status != "" && les.Status != filter.Status {
			continue
		}
		lessons = append(lessons, les)
	}

	if len(ordering) > 0 && !ordering[0].Ascending {
		for i, j := 0, len(lessons)-1; i < j; i, j = i+1, j-1 {
			lessons[i], lessons[j] = lessons[j], lessons[i]
		}
	}
	return lessons, nil
}

func (repo *lessonRepository) UpdateLesson(ctx context.Context, les content.Lesson) (content.Lesson, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[les.ID]; !ok {
		return content.Lesson{}, content.ErrNotFound
	}
	repo.db.t[les.ID] = &les
	return les, nil
}

func (repo *lessonRepository) DeleteLessonsByID(ctx context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.t, id)
		delete(repo.db.revisions, id)
	}
	return nil
}

func (repo *lessonRepository) CreateRevision(ctx context.Context, rev content.LessonRevision) (content.LessonRevision, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rev.ID = uuid.New().String()
	repo.db.revisions[rev.LessonID] = append(repo.db.revisions[rev.LessonID], rev)
	return rev, nil
}

func (repo *lessonRepository) QueryRevisions(ctx context.Context, lessonID string) ([]content.LessonRevision, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	all := repo.db.revisions[lessonID]
	revs := make([]content.LessonRevision, 0, len(all))
	revs = append(revs, all...)
	sort.Slice(revs, func(i, j int) bool { return revs[i].Revision < revs[j].Revision })
	return revs, nil
}

func (repo *lessonRepository) GetRevision(ctx context.Context, lessonID string, revision int) (content.LessonRevision, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, rev := range repo.db.revisions[lessonID] {
		if rev.Revision == revision {
			return rev, nil
		}
	}
	return content.LessonRevision{}, content.ErrRevisionNotFound
}
