package content

import (
	"github.com/go-playground/validator/v10"

	"github.com/playlearnspark/backend/core"
)

var (
	moduleTag  = "module"
	moduleText = "unknown module"

	lessonStatusTag  = "lessonstatus"
	lessonStatusText = "invalid status"
)

func init() {
	_ = core.Validate.RegisterValidation(moduleTag, moduleValidation)
	core.RegisterCustomTranslation(moduleTag, moduleText)

	_ = core.Validate.RegisterValidation(lessonStatusTag, lessonStatusValidation)
	core.RegisterCustomTranslation(lessonStatusTag, lessonStatusText)
}

// moduleValidation checks that the value is a known progress module.
func moduleValidation(fl validator.FieldLevel) bool {
	return KnownModule(fl.Field().String())
}

// lessonStatusValidation checks that the value is a valid lesson status.
func lessonStatusValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}
