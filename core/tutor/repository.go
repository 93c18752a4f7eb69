package tutor

import (
	"context"

	"github.com/tutorren/desk/core"
)

type storeRepository struct {
	store core.Store
}

var _ Repository = (*storeRepository)(nil) // interface compliance check

func NewRepository(store core.Store) Repository {
	return &storeRepository{store: store}
}

func (repo *storeRepository) List(ctx context.Context) ([]Tutor, error) {
	recs, err := repo.store.LoadAll(ctx, Schema.Name)
	if err != nil {
		return nil, err
	}
	tutors := make([]Tutor, 0, len(recs))
	for _, rec := range recs {
		tutors = append(tutors, fromRecord(rec))
	}
	return tutors, nil
}

func (repo *storeRepository) Create(ctx context.Context, t Tutor) error {
	return repo.store.Append(ctx, Schema.Name, toRecord(t))
}

func (repo *storeRepository) Update(ctx context.Context, id string, t Tutor) error {
	return repo.store.Update(ctx, Schema.Name, id, toRecord(t))
}

func (repo *storeRepository) Delete(ctx context.Context, id string) error {
	return repo.store.Delete(ctx, Schema.Name, id)
}
