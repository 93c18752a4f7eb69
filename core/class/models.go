package class

import (
	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/schedule"
)

// IDPrefix of class identifiers: C-001, C-002...
const IDPrefix = "C"

var Schema = core.Schema{
	Name:    "classes",
	Columns: []string{"id", "title", "tutor_id", "student_id", "schedule"},
	Key:     "id",
}

// Class is one weekly recurring session.
// TutorID and StudentID are not checked against their tables.
type Class struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	TutorID   string `json:"tutor_id"`
	StudentID string `json:"student_id"`
	Schedule  string `json:"schedule"` // "Day HH:MM"
}

func (c Class) booking() schedule.Booking {
	return schedule.Booking{ID: c.ID, TutorID: c.TutorID, StudentID: c.StudentID, Schedule: c.Schedule}
}

// NewClass contains information needed to create a new Class.
// TutorID and StudentID accept a bare id or an "<id> — <name>" option label.
// The slot is given either as Day + Time or as a full Schedule code.
type NewClass struct {
	Title     string `json:"title" validate:"required,notblank"`
	TutorID   string `json:"tutor_id" validate:"required,notblank"`
	StudentID string `json:"student_id" validate:"required,notblank"`
	Day       string `json:"day" validate:"required,day"`
	Time      string `json:"time" validate:"required,slot"`
	Schedule  string `json:"schedule" validate:"-"`
}

func (nc *NewClass) Validate(validator *core.Validator) error {
	nc.Title = core.CleanString(nc.Title)
	nc.TutorID = core.ParseOption(nc.TutorID)
	nc.StudentID = core.ParseOption(nc.StudentID)
	nc.Day = core.CleanString(nc.Day)
	nc.Time = core.CleanString(nc.Time)

	if code := core.CleanString(nc.Schedule); code != "" && nc.Day == "" && nc.Time == "" {
		if day, tm, ok := schedule.Decode(code); ok {
			nc.Day, nc.Time = day, tm
		} else {
			return core.NewValidationError(core.ErrInvalidSchedule, core.FieldError{
				Field: "schedule",
				Error: core.ErrInvalidSchedule.Error(),
			})
		}
	}
	return validator.Struct(nc)
}

func (nc *NewClass) code() string {
	return schedule.Encode(nc.Day, nc.Time)
}

// UpdateClass defines what information may be provided to modify an existing Class.
// Nil fields keep their current value.
type UpdateClass struct {
	Title     *string `json:"title"`
	TutorID   *string `json:"tutor_id"`
	StudentID *string `json:"student_id"`
	Day       *string `json:"day"`
	Time      *string `json:"time"`
	Schedule  *string `json:"schedule"`
}

// merge overlays the set fields on `orig`, yielding a full NewClass to validate.
func (uc *UpdateClass) merge(orig Class) NewClass {
	day, tm, _ := schedule.Decode(orig.Schedule)
	nc := NewClass{
		Title:     orig.Title,
		TutorID:   orig.TutorID,
		StudentID: orig.StudentID,
		Day:       day,
		Time:      tm,
	}
	if uc.Title != nil {
		nc.Title = *uc.Title
	}
	if uc.TutorID != nil {
		nc.TutorID = *uc.TutorID
	}
	if uc.StudentID != nil {
		nc.StudentID = *uc.StudentID
	}
	if uc.Schedule != nil && uc.Day == nil && uc.Time == nil {
		nc.Day, nc.Time, nc.Schedule = "", "", *uc.Schedule
	}
	if uc.Day != nil {
		nc.Day = *uc.Day
	}
	if uc.Time != nil {
		nc.Time = *uc.Time
	}
	return nc
}

func toRecord(c Class) core.Record {
	return core.Record{
		"id":         c.ID,
		"title":      c.Title,
		"tutor_id":   c.TutorID,
		"student_id": c.StudentID,
		"schedule":   c.Schedule,
	}
}

func fromRecord(rec core.Record) Class {
	return Class{
		ID:        rec["id"],
		Title:     rec["title"],
		TutorID:   rec["tutor_id"],
		StudentID: rec["student_id"],
		Schedule:  rec["schedule"],
	}
}
