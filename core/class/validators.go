package class

import (
	"github.com/go-playground/validator/v10"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/schedule"
)

var (
	dayTag  = "day"
	dayText = "choose a day from Mon to Sun"

	slotTag  = "slot"
	slotText = "choose an hourly slot from 08:00 to 20:00"
)

// RegisterValidators registers the schedule validation tags on `v`.
func RegisterValidators(v *core.Validator) {
	_ = v.Validate.RegisterValidation(dayTag, dayValidation)
	v.RegisterCustomTranslation(dayTag, dayText)

	_ = v.Validate.RegisterValidation(slotTag, slotValidation)
	v.RegisterCustomTranslation(slotTag, slotText)
}

func dayValidation(fl validator.FieldLevel) bool {
	day, ok := fl.Field().Interface().(string)
	return ok && schedule.IsDay(day)
}

func slotValidation(fl validator.FieldLevel) bool {
	tm, ok := fl.Field().Interface().(string)
	return ok && schedule.IsSlot(tm)
}
