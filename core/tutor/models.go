package tutor

import (
	"strings"

	"github.com/tutorren/desk/core"
)

// IDPrefix of tutor identifiers: T-001, T-002...
const IDPrefix = "T"

var Schema = core.Schema{
	Name:    "tutors",
	Columns: []string{"id", "name", "email", "subjects"},
	Key:     "id",
}

type Tutor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Subjects []string `json:"subjects"`
}

// NewTutor contains information needed to create a new Tutor.
// Subjects is a comma separated list.
type NewTutor struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Subjects string `json:"subjects"`
}

func (nt *NewTutor) Validate(validator *core.Validator) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email)
	return validator.Struct(nt)
}

// UpdateTutor defines what information may be provided to modify an existing Tutor.
// Nil fields keep their current value.
type UpdateTutor struct {
	Name     *string `json:"name" validate:"omitempty,notblank"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Subjects *string `json:"subjects"`
}

func (ut *UpdateTutor) Validate(validator *core.Validator) error {
	if ut.Name != nil {
		*ut.Name = core.CleanString(*ut.Name)
	}
	if ut.Email != nil {
		*ut.Email = core.CleanString(*ut.Email)
	}
	return validator.Struct(ut)
}

func (ut *UpdateTutor) apply(t Tutor) Tutor {
	if ut.Name != nil {
		t.Name = *ut.Name
	}
	if ut.Email != nil {
		t.Email = *ut.Email
	}
	if ut.Subjects != nil {
		t.Subjects = core.SplitList(*ut.Subjects)
	}
	return t
}

func toRecord(t Tutor) core.Record {
	return core.Record{
		"id":       t.ID,
		"name":     t.Name,
		"email":    t.Email,
		"subjects": strings.Join(t.Subjects, ";"),
	}
}

func fromRecord(rec core.Record) Tutor {
	return Tutor{
		ID:       rec["id"],
		Name:     rec["name"],
		Email:    rec["email"],
		Subjects: core.SplitList(rec["subjects"]),
	}
}
