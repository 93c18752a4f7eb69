package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/tutorren/desk/core"
)

var (
	roleTag  = "role"
	roleText = "role must be one of Manager, Tutor or Employee"
)

// RegisterValidators registers the user validation tags on `v`.
func RegisterValidators(v *core.Validator) {
	_ = v.Validate.RegisterValidation(roleTag, roleValidation)
	v.RegisterCustomTranslation(roleTag, roleText)
}

// roleValidation checks that the role is one of AllRoles
func roleValidation(fl validator.FieldLevel) bool {
	role, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	for _, r := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}
