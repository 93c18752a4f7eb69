package student

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

func (repo *storeRepository) List(ctx context.Context) ([]Student, error) {
	recs, err := repo.store.LoadAll(ctx, Schema.Name)
	if err != nil {
		return nil, err
	}
	students := make([]Student, 0, len(recs))
	for _, rec := range recs {
		students = append(students, fromRecord(rec))
	}
	return students, nil
}

func (repo *storeRepository) Create(ctx context.Context, s Student) error {
	return repo.store.Append(ctx, Schema.Name, toRecord(s))
}

func (repo *storeRepository) Update(ctx context.Context, id string, s Student) error {
	return repo.store.Update(ctx, Schema.Name, id, toRecord(s))
}

func (repo *storeRepository) Delete(ctx context.Context, id string) error {
	return repo.store.Delete(ctx, Schema.Name, id)
}
