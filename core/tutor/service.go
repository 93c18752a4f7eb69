package tutor

import (
	"context"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/ident"
)

type (
	Repository interface {
		List(ctx context.Context) ([]Tutor, error)
		Create(ctx context.Context, t Tutor) error
		Update(ctx context.Context, id string, t Tutor) error
		Delete(ctx context.Context, id string) error
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, validator *core.Validator) *Service {
	return &Service{repo: repo, validator: validator}
}

// Create allocates the next "T-NNN" id and appends the tutor.
func (svc *Service) Create(ctx context.Context, nt NewTutor) (Tutor, error) {
	if err := nt.Validate(svc.validator); err != nil {
		return Tutor{}, err
	}
	tutors, err := svc.repo.List(ctx)
	if err != nil {
		return Tutor{}, err
	}
	t := Tutor{
		ID:       ident.Next(IDPrefix, ids(tutors)),
		Name:     nt.Name,
		Email:    nt.Email,
		Subjects: core.SplitList(nt.Subjects),
	}
	if err = svc.repo.Create(ctx, t); err != nil {
		return Tutor{}, err
	}
	return t, nil
}

func (svc *Service) List(ctx context.Context) ([]Tutor, error) {
	return svc.repo.List(ctx)
}

func (svc *Service) Get(ctx context.Context, id string) (Tutor, error) {
	tutors, err := svc.repo.List(ctx)
	if err != nil {
		return Tutor{}, err
	}
	for _, t := range tutors {
		if t.ID == id {
			return t, nil
		}
	}
	return Tutor{}, &core.NotFoundError{Table: Schema.Name, Key: id}
}

func (svc *Service) Update(ctx context.Context, id string, ut UpdateTutor) (Tutor, error) {
	orig, err := svc.Get(ctx, id)
	if err != nil {
		return Tutor{}, err
	}
	if err = ut.Validate(svc.validator); err != nil {
		return Tutor{}, err
	}
	t := ut.apply(orig)
	if err = svc.repo.Update(ctx, id, t); err != nil {
		return Tutor{}, err
	}
	return t, nil
}

// Delete removes the tutor. Classes referencing it are left as they are.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.Delete(ctx, id)
}

// Options lists every tutor as an "<id> — <name>" picker entry, in table order.
func (svc *Service) Options(ctx context.Context) ([]core.Option, error) {
	tutors, err := svc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]core.Option, 0, len(tutors))
	for _, t := range tutors {
		opts = append(opts, core.NewOption(t.ID, t.Name))
	}
	return opts, nil
}

// Names maps tutor ids to names.
func (svc *Service) Names(ctx context.Context) (map[string]string, error) {
	tutors, err := svc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(tutors))
	for _, t := range tutors {
		names[t.ID] = t.Name
	}
	return names, nil
}

func ids(tutors []Tutor) []string {
	out := make([]string, 0, len(tutors))
	for _, t := range tutors {
		out = append(out, t.ID)
	}
	return out
}
