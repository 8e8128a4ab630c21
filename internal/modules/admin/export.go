package admin

import (
	"context"
	"fmt"
	"io"

	"carrental/internal/domain"
	"carrental/internal/pkg/daterange"
	"carrental/internal/repository"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Reservations"

var exportColumns = []string{
	"ID", "Ticket", "Vehicle ID", "Vehicle", "Plate", "User ID",
	"Start", "End", "Days", "Total", "Status", "Extended", "Created",
}

// sheetWriter appends rows to a single excelize sheet.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

func newSheetWriter(name string) (*sheetWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	return &sheetWriter{file: f, sheet: name, row: 1}, nil
}

func (w *sheetWriter) header(columns []string) error {
	if err := w.write(toAny(columns)); err != nil {
		return err
	}
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(w.sheet, "A1", end, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func (w *sheetWriter) write(values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(w.sheet, cell, &values); err != nil {
		return err
	}
	w.row++
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// ExportReservations writes every reservation into an XLSX workbook.
func (s *Service) ExportReservations(ctx context.Context, out io.Writer) (int, error) {
	list, _, err := s.reservations.List(ctx, repository.ReservationFilter{})
	if err != nil {
		return 0, err
	}

	w, err := newSheetWriter(exportSheet)
	if err != nil {
		return 0, err
	}
	defer w.file.Close()

	if err := w.header(exportColumns); err != nil {
		return 0, err
	}
	for _, r := range list {
		if err := w.write(exportRow(r)); err != nil {
			return 0, fmt.Errorf("write reservation %d: %w", r.ID, err)
		}
	}

	if err := w.file.Write(out); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(list), nil
}

func exportRow(r domain.Reservation) []any {
	var vehicle, plate string
	if r.Vehicle != nil {
		vehicle = r.Vehicle.Make + " " + r.Vehicle.Model
		plate = r.Vehicle.Plate
	}
	return []any{
		r.ID,
		r.TicketID,
		r.VehicleID,
		vehicle,
		plate,
		r.UserID,
		r.StartDate.Format(daterange.Layout),
		r.EndDate.Format(daterange.Layout),
		r.DayCount,
		r.TotalPrice,
		string(r.Status),
		r.Extended,
		r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}
