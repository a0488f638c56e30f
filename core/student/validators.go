package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/playlearnspark/backend/core"
)

var (
	avatarTag  = "avatar"
	avatarText = "unknown avatar"
)

func init() {
	_ = core.Validate.RegisterValidation(avatarTag, avatarValidation)
	core.RegisterCustomTranslation(avatarTag, avatarText)
}

// avatarValidation checks that the value is one of the stock avatars.
func avatarValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, avatar := range Avatars {
		if val == avatar {
			return true
		}
	}
	return false
}
