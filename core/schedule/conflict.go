package schedule

import (
	"github.com/tutorren/desk/core"
)

// Booking is the part of a class the conflict rules look at.
type Booking struct {
	ID        string
	TutorID   string
	StudentID string
	Schedule  string
}

// CheckConflict decides whether `cand` may be booked against `existing`.
// The row whose ID equals `selfID` (the class being edited) is skipped.
// A row conflicts when it has the same code and shares the tutor or the student;
// the first one found is reported as a *core.ScheduleConflictError.
// An undecodable candidate code is rejected with core.ErrInvalidSchedule.
func CheckConflict(cand Booking, existing []Booking, selfID string) error {
	if _, ok := Parse(cand.Schedule); !ok {
		return core.NewValidationError(core.ErrInvalidSchedule, core.FieldError{
			Field: "schedule",
			Error: core.ErrInvalidSchedule.Error(),
		})
	}
	for _, row := range existing {
		if selfID != "" && row.ID == selfID {
			continue
		}
		if row.Schedule != cand.Schedule {
			continue
		}
		switch {
		case row.TutorID == cand.TutorID:
			return &core.ScheduleConflictError{Schedule: cand.Schedule, ClassID: row.ID, Party: "tutor"}
		case row.StudentID == cand.StudentID:
			return &core.ScheduleConflictError{Schedule: cand.Schedule, ClassID: row.ID, Party: "student"}
		}
	}
	return nil
}
