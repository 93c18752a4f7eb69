package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tutorren/desk/core"
)

type (
	LoginResponse struct {
		Token string `json:"token"`
	}

	// RemindRequest optionally narrows reminders to classes starting within Horizon.
	RemindRequest struct {
		Horizon string `json:"horizon" query:"horizon"` // e.g. "24h"; "0" sends for every tutor
	}

	RemindResponse struct {
		Sent int `json:"sent"`
	}
)

// ParseHorizon parses rr.Horizon, falling back to `def` when empty.
func (rr *RemindRequest) ParseHorizon(def time.Duration) (time.Duration, error) {
	h := core.CleanString(rr.Horizon)
	if h == "" {
		return def, nil
	}
	d, err := time.ParseDuration(h)
	if err != nil || d < 0 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "horizon", Error: "enter a valid duration, e.g. 24h"})
	}
	return d, nil
}

// bind binds the request into `dst`; undecodable bodies are reported as a 400.
func bind(ctx echo.Context, dst interface{}, name string) error {
	if err := ctx.Bind(dst); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code == http.StatusBadRequest {
			return core.NewValidationError(errors.Errorf("malformed %s", name))
		}
		return errors.Wrapf(err, "binding to %s", name)
	}
	return nil
}
