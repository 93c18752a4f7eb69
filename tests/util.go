package testutil

import (
	"context"
	"testing"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/class"
	"github.com/tutorren/desk/core/student"
	"github.com/tutorren/desk/core/tutor"
	"github.com/tutorren/desk/core/user"
	"github.com/tutorren/desk/storage"
	"github.com/tutorren/desk/storage/memdb"
)

// Services bundles every entity service over one store.
type Services struct {
	Store    core.Store
	Users    *user.Service
	Tutors   *tutor.Service
	Students *student.Service
	Classes  *class.Service
}

// NewStore returns an empty memory store holding every table.
func NewStore() *memdb.DB {
	return memdb.Open(storage.Schemas...)
}

func NewServices(store core.Store) *Services {
	v := core.NewValidator()
	return &Services{
		Store:    store,
		Users:    user.NewService(user.NewRepository(store), v),
		Tutors:   tutor.NewService(tutor.NewRepository(store), v),
		Students: student.NewService(student.NewRepository(store), v),
		Classes:  class.NewService(class.NewRepository(store), v),
	}
}

func CreateUser(t *testing.T, svc *user.Service, uname, pwd, role string) user.User {
	usr, err := svc.Create(context.Background(), user.NewUser{Username: uname, Password: pwd, Role: role})
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func CreateTutor(t *testing.T, svc *tutor.Service, name, email, subjects string) tutor.Tutor {
	tt, err := svc.Create(context.Background(), tutor.NewTutor{Name: name, Email: email, Subjects: subjects})
	if err != nil {
		t.Fatalf("createTutor() failed: %v", err)
	}
	return tt
}

func CreateStudent(t *testing.T, svc *student.Service, name, email, year string) student.Student {
	s, err := svc.Create(context.Background(), student.NewStudent{Name: name, Email: email, Year: year})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return s
}

// CreateClass books `code` ("Day HH:MM") for the tutor and student ids.
func CreateClass(t *testing.T, svc *class.Service, title, tutorID, studentID, code string) class.Class {
	c, err := svc.Create(context.Background(), class.NewClass{
		Title:     title,
		TutorID:   tutorID,
		StudentID: studentID,
		Schedule:  code,
	})
	if err != nil {
		t.Fatalf("createClass() failed: %v", err)
	}
	return c
}
