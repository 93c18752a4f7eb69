package class

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

func (repo *storeRepository) List(ctx context.Context) ([]Class, error) {
	recs, err := repo.store.LoadAll(ctx, Schema.Name)
	if err != nil {
		return nil, err
	}
	classes := make([]Class, 0, len(recs))
	for _, rec := range recs {
		classes = append(classes, fromRecord(rec))
	}
	return classes, nil
}

func (repo *storeRepository) Create(ctx context.Context, c Class) error {
	return repo.store.Append(ctx, Schema.Name, toRecord(c))
}

func (repo *storeRepository) Update(ctx context.Context, id string, c Class) error {
	return repo.store.Update(ctx, Schema.Name, id, toRecord(c))
}

func (repo *storeRepository) Delete(ctx context.Context, id string) error {
	return repo.store.Delete(ctx, Schema.Name, id)
}
