// Package inmemdb provides map-backed repositories for tests and local
// hacking. They honor the same contracts as the postgres repositories.
package inmemdb

import (
	"sync"

	"github.com/playlearnspark/backend/core/content"
	"github.com/playlearnspark/backend/core/feedback"
	"github.com/playlearnspark/backend/core/game"
	"github.com/playlearnspark/backend/core/progress"
	"github.com/playlearnspark/backend/core/reward"
	"github.com/playlearnspark/backend/core/student"
	"github.com/playlearnspark/backend/core/user"
)

type (
	DB struct {
		user     *userTable
		student  *studentTable
		progress *progressTable
		reward   *rewardTable
		game     *gameTable
		lesson   *lessonTable
		feedback *feedbackTable
	}

	userTable struct {
		t     map[string]*user.User
		mutex sync.RWMutex
	}

	studentTable struct {
		t     map[string]*student.Student
		mutex sync.RWMutex
	}

	// Streaks and point balances live on the student row, like in postgres.
	progressTable struct {
		completions  map[string]map[string]progress.Completion  // studentID -> activityID
		moduleLevels map[string]map[string]progress.ModuleLevel // studentID -> module
		mutex        sync.RWMutex
	}

	rewardTable struct {
		entries      map[string][]reward.PointEntry
		redemptions  map[string][]reward.Redemption
		achievements map[string][]reward.EarnedAchievement
		mutex        sync.RWMutex
	}

	gameTable struct {
		scores map[string][]game.Score // studentID
		mutex  sync.RWMutex
	}

	lessonTable struct {
		t         map[string]*content.Lesson
		revisions map[string][]content.LessonRevision // lessonID
		mutex     sync.RWMutex
	}

	feedbackTable struct {
		t     map[string]*feedback.Feedback
		order []string // insertion order, oldest first
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:    &userTable{t: make(map[string]*user.User)},
		student: &studentTable{t: make(map[string]*student.Student)},
		progress: &progressTable{
			completions:  make(map[string]map[string]progress.Completion),
			moduleLevels: make(map[string]map[string]progress.ModuleLevel),
		},
		reward: &rewardTable{
			entries:      make(map[string][]reward.PointEntry),
			redemptions:  make(map[string][]reward.Redemption),
			achievements: make(map[string][]reward.EarnedAchievement),
		},
		game: &gameTable{scores: make(map[string][]game.Score)},
		lesson: &lessonTable{
			t:         make(map[string]*content.Lesson),
			revisions: make(map[string][]content.LessonRevision),
		},
		feedback: &feedbackTable{t: make(map[string]*feedback.Feedback)},
	}
	return db, nil
}
