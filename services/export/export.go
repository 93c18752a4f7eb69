// Package exportsvc renders reports to files: the weekly schedule as PDF
// and the three-day snapshot as an XLSX spreadsheet.
package exportsvc

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/tutorren/desk/core/report"
)

const (
	PDFContentType  = "application/pdf"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	snapshotSheet = "Snapshot"
	whenLayout    = "Mon 02 Jan 2006 15:04"
)

type Service struct {
	appName string
	reports *report.Service
	nowFunc func() time.Time
}

func NewService(appName string, reports *report.Service) *Service {
	return &Service{appName: appName, reports: reports, nowFunc: time.Now}
}

// FileName returns a timestamped export file name, e.g. "schedule_20240515_103000.pdf".
func FileName(kind, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", kind, now.Format("20060102_150405"), ext)
}

// WriteSchedulePDF writes the weekly schedule of every tutor, then of every student.
func (svc *Service) WriteSchedulePDF(ctx context.Context, w io.Writer) error {
	tutors, err := svc.reports.TutorSchedules(ctx)
	if err != nil {
		return err
	}
	students, err := svc.reports.StudentSchedules(ctx)
	if err != nil {
		return err
	}
	return SchedulePDF(w, svc.appName, tutors, students, svc.nowFunc())
}

// WriteSnapshotXLSX writes every class occurrence of the next three days.
func (svc *Service) WriteSnapshotXLSX(ctx context.Context, w io.Writer) error {
	now := svc.nowFunc()
	occs, err := svc.reports.Snapshot(ctx, now)
	if err != nil {
		return err
	}
	return SnapshotXLSX(w, occs, now)
}

// SchedulePDF renders one section per group list, one block per group.
func SchedulePDF(w io.Writer, appName string, tutors, students []report.Group, generated time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(appName+" weekly schedule", true)
	pdf.SetCreator(appName, true)
	pdf.SetCreationDate(generated)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Generated %s - page %d", generated.Format(whenLayout), pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	section := func(title string, groups []report.Group) {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 18)
		pdf.CellFormat(0, 12, tr(title), "", 1, "L", false, 0, "")
		if len(groups) == 0 {
			pdf.SetFont("Helvetica", "", 11)
			pdf.CellFormat(0, 8, "Nothing to report.", "", 1, "L", false, 0, "")
			return
		}
		for _, g := range groups {
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", 13)
			pdf.CellFormat(0, 9, tr(fmt.Sprintf("%s (%s)", g.Name, g.ID)), "B", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			if len(g.Entries) == 0 {
				pdf.CellFormat(0, 7, "No classes.", "", 1, "L", false, 0, "")
				continue
			}
			for _, e := range g.Entries {
				pdf.CellFormat(30, 7, tr(e.Schedule), "", 0, "L", false, 0, "")
				pdf.CellFormat(70, 7, tr(e.Title), "", 0, "L", false, 0, "")
				pdf.CellFormat(0, 7, tr("with "+e.With), "", 1, "L", false, 0, "")
			}
		}
	}
	section("Tutor schedules", tutors)
	section("Student schedules", students)

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "writing pdf")
	}
	return nil
}

// SnapshotXLSX writes one row per occurrence, in the order given.
func SnapshotXLSX(w io.Writer, occs []report.Occurrence, generated time.Time) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", snapshotSheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}

	headers := []string{"When", "Class", "Title", "Tutor", "Student", "Schedule"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(snapshotSheet, cell, header); err != nil {
			return errors.Wrap(err, "writing header")
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(snapshotSheet, "A1", "F1", style)
	}
	_ = f.SetColWidth(snapshotSheet, "A", "A", 24)
	_ = f.SetColWidth(snapshotSheet, "B", "F", 16)

	for i, o := range occs {
		row := []interface{}{
			o.When.Format(whenLayout),
			o.Class.ID,
			o.Class.Title,
			o.TutorName,
			o.StudentName,
			o.Class.Schedule,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(snapshotSheet, cell, &row); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}

	footer, _ := excelize.CoordinatesToCellName(1, len(occs)+3)
	_ = f.SetCellValue(snapshotSheet, footer, "Generated "+generated.Format(whenLayout))

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "writing xlsx")
	}
	return nil
}
