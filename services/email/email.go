// Package emailsvc holds the core.EmailService backends.
package emailsvc

import (
	"io"

	"github.com/pkg/errors"

	"github.com/tutorren/desk/core"
)

// NewService returns the email backend selected by `conf.Email.Backend`.
func NewService(conf *core.Config, consoleOut io.Writer) (core.EmailService, error) {
	switch conf.Email.Backend {
	case core.EmailConsole:
		return NewConsoleService(conf, consoleOut), nil
	case core.EmailSendgrid:
		return NewSendgridService(conf), nil
	case core.EmailSMTP:
		return NewSMTPService(conf), nil
	default:
		return nil, errors.Errorf("unknown email backend %q", conf.Email.Backend)
	}
}
