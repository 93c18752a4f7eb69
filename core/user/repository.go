package user

import (
	"context"

	"github.com/tutorren/desk/core"
)

type storeRepository struct {
	store core.Store
}

var _ Repository = (*storeRepository)(nil) // interface compliance check

// NewRepository returns a Repository over the "users" table of `store`.
func NewRepository(store core.Store) Repository {
	return &storeRepository{store: store}
}

func (repo *storeRepository) List(ctx context.Context) ([]User, error) {
	recs, err := repo.store.LoadAll(ctx, Schema.Name)
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, fromRecord(rec))
	}
	return users, nil
}

func (repo *storeRepository) Get(ctx context.Context, username string) (User, error) {
	users, err := repo.List(ctx)
	if err != nil {
		return User{}, err
	}
	for _, usr := range users {
		if usr.Username == username {
			return usr, nil
		}
	}
	return User{}, &core.NotFoundError{Table: Schema.Name, Key: username}
}

func (repo *storeRepository) Create(ctx context.Context, usr User) error {
	return repo.store.Append(ctx, Schema.Name, toRecord(usr))
}

func (repo *storeRepository) Update(ctx context.Context, username string, usr User) error {
	return repo.store.Update(ctx, Schema.Name, username, toRecord(usr))
}

func (repo *storeRepository) Delete(ctx context.Context, username string) error {
	return repo.store.Delete(ctx, Schema.Name, username)
}
