package user

import (
	"github.com/tutorren/desk/core"
)

// Roles
const (
	RoleManager  = "Manager"
	RoleTutor    = "Tutor"
	RoleEmployee = "Employee"
)

var (
	AllRoles = []string{RoleManager, RoleTutor, RoleEmployee}

	Schema = core.Schema{
		Name:    "users",
		Columns: []string{"username", "password", "role"},
		Key:     "username",
	}
)

type User struct {
	Username string `json:"username"`
	Password string `json:"-"` // cleartext
	Role     string `json:"role"`
}

func (u User) IsManager() bool {
	return u.Role == RoleManager
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
	Role     string `json:"role" validate:"required,role"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Username = core.CleanString(nu.Username)
	nu.Password = core.CleanString(nu.Password)
	nu.Role = core.CleanString(nu.Role)
	return svc.validator.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Blank fields keep their current value.
type UpdateUser struct {
	Username string `json:"username" validate:"omitempty,notblank"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"omitempty,role"`
}

func (uu *UpdateUser) Validate(origUsr User, svc *Service) error {
	if uname := core.CleanString(uu.Username); uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}
	if pwd := core.CleanString(uu.Password); pwd != "" {
		uu.Password = pwd
	} else {
		uu.Password = origUsr.Password
	}
	if role := core.CleanString(uu.Role); role != "" {
		uu.Role = role
	} else {
		uu.Role = origUsr.Role
	}
	return svc.validator.Struct(uu)
}

// Credentials are submitted on login.
type Credentials struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

func (c *Credentials) Validate(svc *Service) error {
	c.Username = core.CleanString(c.Username)
	c.Password = core.CleanString(c.Password)
	return svc.validator.Struct(c)
}

func toRecord(usr User) core.Record {
	return core.Record{
		"username": usr.Username,
		"password": usr.Password,
		"role":     usr.Role,
	}
}

func fromRecord(rec core.Record) User {
	return User{
		Username: rec["username"],
		Password: rec["password"],
		Role:     rec["role"],
	}
}
