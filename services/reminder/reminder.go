// Package remindsvc emails every tutor about their next class.
package remindsvc

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/report"
)

const (
	templateName = "class_reminder"
	whenLayout   = "Monday 02 January 2006 at 15:04"
)

// Data is passed to the class_reminder templates.
type Data struct {
	TutorName   string
	Title       string
	StudentName string
	When        string
	Schedule    string
}

type Service struct {
	template string

	reports *report.Service
	mailSvc core.EmailService
	logger  core.Logger
}

func NewService(reports *report.Service, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{template: templateName, reports: reports, mailSvc: mailSvc, logger: logger}
}

// Messages builds one reminder per tutor holding an email address, for the
// class occurring first at or after `now`. When `horizon` is positive,
// classes further than `horizon` away are left out.
func (svc *Service) Messages(ctx context.Context, now time.Time, horizon time.Duration) ([]*core.EmailMessage, error) {
	occs, err := svc.reports.NearestPerTutor(ctx, now)
	if err != nil {
		return nil, err
	}
	msgs := make([]*core.EmailMessage, 0, len(occs))
	for _, occ := range occs {
		if occ.TutorEmail == "" {
			continue
		}
		if horizon > 0 && !occ.When.Before(now.Add(horizon)) {
			continue
		}
		to, err := mail.ParseAddress(occ.TutorEmail)
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("skipping reminder for %s: bad email %q", occ.Class.TutorID, occ.TutorEmail), err)
			continue
		}
		to.Name = occ.TutorName
		msgs = append(msgs, &core.EmailMessage{
			To:           []mail.Address{*to},
			Subject:      "Upcoming class: " + occ.Class.Title,
			TemplateName: svc.template,
			TemplateData: Data{
				TutorName:   occ.TutorName,
				Title:       occ.Class.Title,
				StudentName: occ.StudentName,
				When:        occ.When.Format(whenLayout),
				Schedule:    occ.Class.Schedule,
			},
		})
	}
	return msgs, nil
}

// Send emails the reminders of Messages and returns how many were sent.
func (svc *Service) Send(ctx context.Context, now time.Time, horizon time.Duration) (int, error) {
	msgs, err := svc.Messages(ctx, now, horizon)
	if err != nil {
		return 0, err
	}
	if len(msgs) == 0 {
		return 0, nil
	}
	if err = svc.mailSvc.SendMessages(ctx, msgs...); err != nil {
		return 0, err
	}
	svc.logger.Info(fmt.Sprintf("sent %d class reminder(s)", len(msgs)))
	return len(msgs), nil
}
