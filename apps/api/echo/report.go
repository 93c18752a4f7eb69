package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/report"
	"github.com/tutorren/desk/core/student"
	"github.com/tutorren/desk/core/tutor"
	exportsvc "github.com/tutorren/desk/services/export"
	remindsvc "github.com/tutorren/desk/services/reminder"
)

type (
	reportAPIDeps struct {
		tutors    *tutor.Service
		students  *student.Service
		reports   *report.Service
		exports   *exportsvc.Service
		reminders *remindsvc.Service
	}

	reportApi struct {
		reportAPIDeps
		conf *core.Config
	}

	DashboardResponse struct {
		Counts   report.Counts       `json:"counts"`
		Upcoming []report.Occurrence `json:"upcoming"` // next class of every tutor
	}
)

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, deps reportAPIDeps) {
	api := reportApi{reportAPIDeps: deps, conf: conf}

	ag := g.Group("", jwt)
	ag.GET("/dashboard", api.dashboard)
	ag.GET("/options/tutors", api.tutorOptions)
	ag.GET("/options/students", api.studentOptions)
	ag.GET("/reports/tutors", api.tutorSchedules)
	ag.GET("/reports/students", api.studentSchedules)
	ag.GET("/reports/schedule.pdf", api.schedulePDF)
	ag.GET("/reports/snapshot.xlsx", api.snapshotXLSX)
	ag.POST("/reminders", api.remind)
}

func (api *reportApi) dashboard(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	counts, err := api.reports.Counts(rctx)
	if err != nil {
		return errors.Wrap(err, "counting rows")
	}
	upcoming, err := api.reports.NearestPerTutor(rctx, time.Now())
	if err != nil {
		return errors.Wrap(err, "finding upcoming classes")
	}
	if upcoming == nil {
		upcoming = []report.Occurrence{}
	}
	return ctx.JSON(http.StatusOK, DashboardResponse{Counts: counts, Upcoming: upcoming})
}

func (api *reportApi) tutorOptions(ctx echo.Context) error {
	opts, err := api.tutors.Options(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing tutor options")
	}
	return ctx.JSON(http.StatusOK, opts)
}

func (api *reportApi) studentOptions(ctx echo.Context) error {
	opts, err := api.students.Options(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing student options")
	}
	return ctx.JSON(http.StatusOK, opts)
}

func (api *reportApi) tutorSchedules(ctx echo.Context) error {
	groups, err := api.reports.TutorSchedules(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "grouping tutor schedules")
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *reportApi) studentSchedules(ctx echo.Context) error {
	groups, err := api.reports.StudentSchedules(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "grouping student schedules")
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *reportApi) schedulePDF(ctx echo.Context) error {
	var buf bytes.Buffer
	if err := api.exports.WriteSchedulePDF(ctx.Request().Context(), &buf); err != nil {
		return errors.Wrap(err, "exporting schedule")
	}
	return attachment(ctx, exportsvc.PDFContentType, exportsvc.FileName("schedule", "pdf", time.Now()), &buf)
}

func (api *reportApi) snapshotXLSX(ctx echo.Context) error {
	var buf bytes.Buffer
	if err := api.exports.WriteSnapshotXLSX(ctx.Request().Context(), &buf); err != nil {
		return errors.Wrap(err, "exporting snapshot")
	}
	return attachment(ctx, exportsvc.XLSXContentType, exportsvc.FileName("snapshot", "xlsx", time.Now()), &buf)
}

// remind emails every tutor about their next class.
func (api *reportApi) remind(ctx echo.Context) error {
	var data RemindRequest
	if err := bind(ctx, &data, "RemindRequest"); err != nil {
		return err
	}
	horizon, err := data.ParseHorizon(api.conf.Reminders.Horizon)
	if err != nil {
		return err
	}
	sent, err := api.reminders.Send(ctx.Request().Context(), time.Now(), horizon)
	if err != nil {
		return errors.Wrap(err, "sending reminders")
	}
	return ctx.JSON(http.StatusOK, RemindResponse{Sent: sent})
}

// attachment is rendered in memory first so a failed export still gets a JSON error.
func attachment(ctx echo.Context, contentType, filename string, buf *bytes.Buffer) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, contentType, buf.Bytes())
}
