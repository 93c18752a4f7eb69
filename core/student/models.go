package student

import (
	"github.com/tutorren/desk/core"
)

// IDPrefix of student identifiers: S-001, S-002...
const IDPrefix = "S"

var Schema = core.Schema{
	Name:    "students",
	Columns: []string{"id", "name", "email", "year"},
	Key:     "id",
}

type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Year  string `json:"year"` // year level, free text
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
	Year  string `json:"year" validate:"required,notblank"`
}

func (ns *NewStudent) Validate(validator *core.Validator) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email)
	ns.Year = core.CleanString(ns.Year)
	return validator.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	Name  *string `json:"name" validate:"omitempty,notblank"`
	Email *string `json:"email" validate:"omitempty,email"`
	Year  *string `json:"year" validate:"omitempty,notblank"`
}

func (us *UpdateStudent) Validate(validator *core.Validator) error {
	for _, fld := range []*string{us.Name, us.Email, us.Year} {
		if fld != nil {
			*fld = core.CleanString(*fld)
		}
	}
	return validator.Struct(us)
}

func (us *UpdateStudent) apply(s Student) Student {
	if us.Name != nil {
		s.Name = *us.Name
	}
	if us.Email != nil {
		s.Email = *us.Email
	}
	if us.Year != nil {
		s.Year = *us.Year
	}
	return s
}

func toRecord(s Student) core.Record {
	return core.Record{
		"id":    s.ID,
		"name":  s.Name,
		"email": s.Email,
		"year":  s.Year,
	}
}

func fromRecord(rec core.Record) Student {
	return Student{
		ID:    rec["id"],
		Name:  rec["name"],
		Email: rec["email"],
		Year:  rec["year"],
	}
}
