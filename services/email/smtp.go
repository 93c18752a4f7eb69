package emailsvc

import (
	"context"
	"net/mail"
	"net/smtp"
	"time"

	"github.com/pkg/errors"

	"github.com/tutorren/desk/core"
)

var smtpSendMailFunc = smtp.SendMail // mockable

type smtpService struct {
	appName          string
	addr             string
	auth             smtp.Auth
	defaultFromEmail mail.Address
	subjPrefix       string
}

var _ core.EmailService = (*smtpService)(nil)

// NewSMTPService relays messages through the configured SMTP server,
// authenticating with PLAIN auth when a username is set.
func NewSMTPService(conf *core.Config) core.EmailService {
	svc := &smtpService{
		appName:          conf.AppName,
		addr:             conf.Email.SMTPAddress(),
		defaultFromEmail: conf.Email.DefaultFromEmail,
		subjPrefix:       conf.SubjectPrefix(),
	}
	if conf.Email.SMTPUsername != "" {
		svc.auth = smtp.PlainAuth("", conf.Email.SMTPUsername, conf.Email.SMTPPassword, conf.Email.SMTPHost)
	}
	return svc
}

func (svc *smtpService) SendMessages(ctx context.Context, messages ...*core.EmailMessage) error {
	for _, msg := range messages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := msg.Render(svc.appName); err != nil {
			return errors.Wrap(err, "rendering email")
		}
		if !sendable(msg) {
			continue
		}
		raw, err := compose(svc.defaultFromEmail, svc.subjPrefix+msg.Subject, msg, time.Now())
		if err != nil {
			return errors.Wrap(err, "composing email")
		}
		if err = smtpSendMailFunc(svc.addr, svc.auth, svc.defaultFromEmail.Address, recipients(msg), raw); err != nil {
			return errors.Wrap(err, "sending email")
		}
	}
	return nil
}
