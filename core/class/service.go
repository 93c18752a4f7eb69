package class

import (
	"context"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/ident"
	"github.com/tutorren/desk/core/schedule"
)

type (
	Repository interface {
		List(ctx context.Context) ([]Class, error)
		Create(ctx context.Context, c Class) error
		Update(ctx context.Context, id string, c Class) error
		Delete(ctx context.Context, id string) error
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, validator *core.Validator) *Service {
	RegisterValidators(validator)
	return &Service{repo: repo, validator: validator}
}

// Create books a new class after checking that neither its tutor nor its
// student already has a class at the same weekly slot.
func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	if err := nc.Validate(svc.validator); err != nil {
		return Class{}, err
	}
	classes, err := svc.repo.List(ctx)
	if err != nil {
		return Class{}, err
	}

	ids := make([]string, 0, len(classes))
	for _, c := range classes {
		ids = append(ids, c.ID)
	}
	c := Class{
		ID:        ident.Next(IDPrefix, ids),
		Title:     nc.Title,
		TutorID:   nc.TutorID,
		StudentID: nc.StudentID,
		Schedule:  nc.code(),
	}
	if err = schedule.CheckConflict(c.booking(), bookings(classes), ""); err != nil {
		return Class{}, err
	}
	if err = svc.repo.Create(ctx, c); err != nil {
		return Class{}, err
	}
	return c, nil
}

func (svc *Service) List(ctx context.Context) ([]Class, error) {
	return svc.repo.List(ctx)
}

func (svc *Service) Get(ctx context.Context, id string) (Class, error) {
	classes, err := svc.repo.List(ctx)
	if err != nil {
		return Class{}, err
	}
	return find(classes, id)
}

// Update applies `uc` to the class `id`. The class does not conflict with itself.
func (svc *Service) Update(ctx context.Context, id string, uc UpdateClass) (Class, error) {
	classes, err := svc.repo.List(ctx)
	if err != nil {
		return Class{}, err
	}
	orig, err := find(classes, id)
	if err != nil {
		return Class{}, err
	}

	nc := uc.merge(orig)
	if err = nc.Validate(svc.validator); err != nil {
		return Class{}, err
	}
	c := Class{
		ID:        orig.ID,
		Title:     nc.Title,
		TutorID:   nc.TutorID,
		StudentID: nc.StudentID,
		Schedule:  nc.code(),
	}
	if err = schedule.CheckConflict(c.booking(), bookings(classes), orig.ID); err != nil {
		return Class{}, err
	}
	if err = svc.repo.Update(ctx, id, c); err != nil {
		return Class{}, err
	}
	return c, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.Delete(ctx, id)
}

// Availability indexes the occupied slots of every class.
// When `editingID` is set, that class's own slot is left free.
func (svc *Service) Availability(ctx context.Context, editingID string) (*schedule.Index, string, error) {
	classes, err := svc.repo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	var carveOut string
	if editingID != "" {
		editing, err := find(classes, editingID)
		if err != nil {
			return nil, "", err
		}
		carveOut = editing.Schedule
	}
	codes := make([]string, 0, len(classes))
	for _, c := range classes {
		codes = append(codes, c.Schedule)
	}
	return schedule.NewIndex(codes, carveOut), carveOut, nil
}

// PickerQuery drives the slot picker: the class being edited, if any,
// the displayed day and the chosen time.
type PickerQuery struct {
	Editing  string `query:"editing"`
	Day      string `query:"day"`
	Selected string `query:"selected"`
}

// Picker rebuilds the slot picker for `q`.
func (svc *Service) Picker(ctx context.Context, q PickerQuery) (*schedule.Picker, error) {
	idx, editingCode, err := svc.Availability(ctx, core.CleanString(q.Editing))
	if err != nil {
		return nil, err
	}
	p := schedule.NewPicker(idx, editingCode)
	if day := core.CleanString(q.Day); day != "" {
		if err = p.SelectDay(day); err != nil {
			return nil, core.NewValidationError(err, core.FieldError{Field: "day", Error: err.Error()})
		}
	}
	if tm := core.CleanString(q.Selected); tm != "" {
		if err = p.Choose(tm); err != nil {
			return nil, core.NewValidationError(err, core.FieldError{Field: "selected", Error: err.Error()})
		}
	}
	return p, nil
}

func find(classes []Class, id string) (Class, error) {
	for _, c := range classes {
		if c.ID == id {
			return c, nil
		}
	}
	return Class{}, &core.NotFoundError{Table: Schema.Name, Key: id}
}

func bookings(classes []Class) []schedule.Booking {
	out := make([]schedule.Booking, 0, len(classes))
	for _, c := range classes {
		out = append(out, c.booking())
	}
	return out
}
