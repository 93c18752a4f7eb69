// Package shared wires the services common to every app.
package shared

import (
	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/class"
	"github.com/tutorren/desk/core/report"
	"github.com/tutorren/desk/core/student"
	"github.com/tutorren/desk/core/tutor"
	"github.com/tutorren/desk/core/user"
	exportsvc "github.com/tutorren/desk/services/export"
	remindsvc "github.com/tutorren/desk/services/reminder"
)

type Services struct {
	Users     *user.Service
	Tutors    *tutor.Service
	Students  *student.Service
	Classes   *class.Service
	Reports   *report.Service
	Exports   *exportsvc.Service
	Reminders *remindsvc.Service
}

// NewServices builds every service over `store`, sharing one validator.
func NewServices(conf *core.Config, store core.Store, mailSvc core.EmailService, logger core.Logger) *Services {
	v := core.NewValidator()
	svcs := &Services{
		Users:    user.NewService(user.NewRepository(store), v),
		Tutors:   tutor.NewService(tutor.NewRepository(store), v),
		Students: student.NewService(student.NewRepository(store), v),
		Classes:  class.NewService(class.NewRepository(store), v),
	}
	svcs.Reports = report.NewService(svcs.Tutors, svcs.Students, svcs.Classes)
	svcs.Exports = exportsvc.NewService(conf.AppName, svcs.Reports)
	svcs.Reminders = remindsvc.NewService(svcs.Reports, mailSvc, logger)
	return svcs
}
