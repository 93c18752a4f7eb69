package user

import (
	"context"
	"crypto/subtle"

	"github.com/pkg/errors"

	"github.com/tutorren/desk/core"
)

var (
	// errors
	ErrAuthenticationFailed = errors.New("invalid username or password")
)

type (
	Repository interface {
		List(ctx context.Context) ([]User, error)
		Get(ctx context.Context, username string) (User, error)
		Create(ctx context.Context, usr User) error
		Update(ctx context.Context, username string, usr User) error
		Delete(ctx context.Context, username string) error
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

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc); err != nil {
		return User{}, err
	}
	usr := User{Username: nu.Username, Password: nu.Password, Role: nu.Role}
	if err := svc.repo.Create(ctx, usr); err != nil {
		return User{}, err
	}
	return usr, nil
}

// Authenticate returns the User matching `creds`.
// Passwords are stored and compared in clear text.
func (svc *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	if err := creds.Validate(svc); err != nil {
		return User{}, err
	}
	users, err := svc.repo.List(ctx)
	if err != nil {
		return User{}, err
	}
	for _, usr := range users {
		if usr.Username != creds.Username {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(usr.Password), []byte(creds.Password)) == 1 {
			return usr, nil
		}
		break
	}
	return User{}, ErrAuthenticationFailed
}

func (svc *Service) List(ctx context.Context) ([]User, error) {
	return svc.repo.List(ctx)
}

func (svc *Service) Get(ctx context.Context, username string) (User, error) {
	return svc.repo.Get(ctx, core.CleanString(username))
}

func (svc *Service) Update(ctx context.Context, username string, uu UpdateUser) (User, error) {
	origUsr, err := svc.Get(ctx, username)
	if err != nil {
		return User{}, err
	}
	if err = uu.Validate(origUsr, svc); err != nil {
		return User{}, err
	}
	usr := User{Username: uu.Username, Password: uu.Password, Role: uu.Role}
	if err = svc.repo.Update(ctx, origUsr.Username, usr); err != nil {
		return User{}, err
	}
	return usr, nil
}

// SetPassword replaces the password of `username`.
func (svc *Service) SetPassword(ctx context.Context, username, pwd string) error {
	_, err := svc.Update(ctx, username, UpdateUser{Password: pwd})
	return err
}

// UpdateOrCreate creates `nu`, or resets the password and role of the existing user.
func (svc *Service) UpdateOrCreate(ctx context.Context, nu NewUser) (User, error) {
	usr, err := svc.Create(ctx, nu)
	if !core.IsDuplicateKey(err) {
		return usr, err
	}
	return svc.Update(ctx, nu.Username, UpdateUser{Password: nu.Password, Role: nu.Role})
}

func (svc *Service) Delete(ctx context.Context, username string) error {
	return svc.repo.Delete(ctx, core.CleanString(username))
}
