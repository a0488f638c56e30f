package content

import (
	"time"

	"github.com/playlearnspark/backend/core"
)

// Lesson statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

var Statuses = []string{StatusDraft, StatusPublished, StatusArchived}

type Lesson struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Module    string    `json:"module"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	Revision  int       `json:"revision"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (l *Lesson) IsPublished() bool { return l.Status == StatusPublished }

// LessonRevision is an immutable snapshot of a Lesson taken on every edit.
type LessonRevision struct {
	ID        string    `json:"id"`
	LessonID  string    `json:"lesson_id"`
	Revision  int       `json:"revision"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	Title  string `json:"title" validate:"required"`
	Module string `json:"module" validate:"required,module"`
	Body   string `json:"body" validate:"required"`
	Status string `json:"status" validate:"omitempty,lessonstatus"`
}

func (nl *NewLesson) Validate() error {
	nl.Title = core.CleanString(nl.Title)
	nl.Module = core.CleanString(nl.Module, true /* lower */)
	nl.Status = core.CleanString(nl.Status, true /* lower */)
	if nl.Status == "" {
		nl.Status = StatusDraft
	}
	return core.Validate.Struct(nl)
}

// UpdateLesson defines what information may be provided to modify an existing Lesson.
// A change to Title or Body records a new revision.
type UpdateLesson struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Status string `json:"status" validate:"omitempty,lessonstatus"`
}

func (ul *UpdateLesson) Validate(origLes Lesson) error {
	title := core.CleanString(ul.Title)
	if title != "" {
		ul.Title = title
	} else {
		ul.Title = origLes.Title
	}

	if ul.Body == "" {
		ul.Body = origLes.Body
	}

	ul.Status = core.CleanString(ul.Status, true /* lower */)
	if ul.Status == "" {
		ul.Status = origLes.Status
	}
	return core.Validate.Struct(ul)
}

type QueryFilter struct {
	Search string `query:"search"`
	Module string `query:"module"`
	Status string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Module == "" && qf.Status == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Module = core.CleanString(qf.Module, true /* lower */)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
}
