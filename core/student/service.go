package student

import (
	"context"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/ident"
)

type (
	Repository interface {
		List(ctx context.Context) ([]Student, error)
		Create(ctx context.Context, s Student) error
		Update(ctx context.Context, id string, s Student) error
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

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validator); err != nil {
		return Student{}, err
	}
	students, err := svc.repo.List(ctx)
	if err != nil {
		return Student{}, err
	}
	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	s := Student{
		ID:    ident.Next(IDPrefix, ids),
		Name:  ns.Name,
		Email: ns.Email,
		Year:  ns.Year,
	}
	if err = svc.repo.Create(ctx, s); err != nil {
		return Student{}, err
	}
	return s, nil
}

func (svc *Service) List(ctx context.Context) ([]Student, error) {
	return svc.repo.List(ctx)
}

func (svc *Service) Get(ctx context.Context, id string) (Student, error) {
	students, err := svc.repo.List(ctx)
	if err != nil {
		return Student{}, err
	}
	for _, s := range students {
		if s.ID == id {
			return s, nil
		}
	}
	return Student{}, &core.NotFoundError{Table: Schema.Name, Key: id}
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	orig, err := svc.Get(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if err = us.Validate(svc.validator); err != nil {
		return Student{}, err
	}
	s := us.apply(orig)
	if err = svc.repo.Update(ctx, id, s); err != nil {
		return Student{}, err
	}
	return s, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.Delete(ctx, id)
}

func (svc *Service) Options(ctx context.Context) ([]core.Option, error) {
	students, err := svc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]core.Option, 0, len(students))
	for _, s := range students {
		opts = append(opts, core.NewOption(s.ID, s.Name))
	}
	return opts, nil
}

// Names maps student ids to names.
func (svc *Service) Names(ctx context.Context) (map[string]string, error) {
	students, err := svc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
	}
	return names, nil
}
