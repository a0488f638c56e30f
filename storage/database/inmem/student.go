package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/playlearnspark/backend/core/student"
)

type studentRepository struct {
	db       *studentTable
	progress *progressTable
	reward   *rewardTable
	game     *gameTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db.student, progress: db.progress, reward: db.reward, game: db.game}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.t))
	for _, std := range repo.db.t {
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].CreatedAt.Before(students[j].CreatedAt) })
	return students
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	std.ID = uuid.New().String()
	repo.db.t[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if std, ok := repo.db.t[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryStudentsByParent(ctx context.Context, parentID string) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0)
	for _, std := range repo.query() {
		if std.ParentID == parentID {
			students = append(students, std)
		}
	}
	return students, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) CountStudentsByParent(ctx context.Context, parentID string) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var count int
	for _, std := range repo.db.t {
		if std.ParentID == parentID {
			count++
		}
	}
	return count, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[std.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.t[std.ID] = &std
	return std, nil
}

// DeleteStudentsByID removes the profiles along with their progress, point
// ledger, redemptions, achievements and game scores; postgres does the same
// through ON DELETE CASCADE.
func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	for _, id := range ids {
		delete(repo.db.t, id)
	}
	repo.db.mutex.Unlock()

	repo.progress.mutex.Lock()
	for _, id := range ids {
		delete(repo.progress.completions, id)
		delete(repo.progress.moduleLevels, id)
	}
	repo.progress.mutex.Unlock()

	repo.reward.mutex.Lock()
	for _, id := range ids {
		delete(repo.reward.entries, id)
		delete(repo.reward.redemptions, id)
		delete(repo.reward.achievements, id)
	}
	repo.reward.mutex.Unlock()

	repo.game.mutex.Lock()
	for _, id := range ids {
		delete(repo.game.scores, id)
	}
	repo.game.mutex.Unlock()
	return nil
}
