package student

import (
	"time"

	"github.com/playlearnspark/backend/core"
)

// MaxPerParent caps the number of learner profiles a parent account can hold.
const MaxPerParent = 5

const defaultAvatar = "⭐"

var Avatars = []string{"⭐", "🦄", "🐯", "🐸", "🚀", "🌈", "🐙", "🦖", "🐼", "🦊"}

type Student struct {
	ID            string    `json:"id"`
	ParentID      string    `json:"parent_id"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Grade         string    `json:"grade,omitempty"`
	Avatar        string    `json:"avatar"`
	PointsBalance int       `json:"points_balance"`
	StreakCurrent int       `json:"streak_current"`
	StreakLongest int       `json:"streak_longest"`
	StreakLastDay time.Time `json:"streak_last_day,omitempty"` // date only; zero when no streak yet
	CreatedAt     time.Time `json:"created_at"`                // UTC
	UpdatedAt     time.Time `json:"updated_at"`                // UTC
}

// NewStudent contains information needed to create a new Student profile.
type NewStudent struct {
	Name   string `json:"name" validate:"required"`
	Age    int    `json:"age" validate:"required,gte=2,lte=12"`
	Grade  string `json:"grade" validate:"omitempty,max=30"`
	Avatar string `json:"avatar" validate:"omitempty,avatar"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Grade = core.CleanString(ns.Grade, true /* lower */)
	if ns.Avatar == "" {
		ns.Avatar = defaultAvatar
	}
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	Name   string `json:"name"`
	Age    int    `json:"age" validate:"omitempty,gte=2,lte=12"`
	Grade  string `json:"grade" validate:"omitempty,max=30"`
	Avatar string `json:"avatar" validate:"omitempty,avatar"`
}

func (us *UpdateStudent) Validate(origStd Student) error {
	name := core.CleanString(us.Name)
	if name != "" {
		us.Name = name
	} else {
		us.Name = origStd.Name
	}
	if us.Age == 0 {
		us.Age = origStd.Age
	}
	grade := core.CleanString(us.Grade, true /* lower */)
	if grade != "" {
		us.Grade = grade
	} else {
		us.Grade = origStd.Grade
	}
	if us.Avatar == "" {
		us.Avatar = origStd.Avatar
	}
	return core.Validate.Struct(us)
}
