package extension

import (
	"context"
	"errors"
	"time"

	"carrental/internal/domain"
	"carrental/internal/metrics"
	"carrental/internal/modules/availability"
	"carrental/internal/pkg/daterange"
	"carrental/internal/repository"
)

type Service struct {
	store     *repository.Store
	lifecycle Lifecycle
}

func NewService(store *repository.Store, lifecycle Lifecycle) *Service {
	return &Service{store: store, lifecycle: lifecycle}
}

// Extend moves the end date of a confirmed or active reservation forward,
// charging the extra days at the reservation's own daily rate.
func (s *Service) Extend(ctx context.Context, reservationID int64, newEnd time.Time) (*Result, error) {
	newEnd = daterange.Day(newEnd)

	var (
		res *Result
		ext *domain.Extension
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		r, _, err := s.lifecycle.LoadLocked(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if !domain.CanApply(r.Status, domain.ActionExtend) {
			return &domain.TransitionError{From: r.Status, Action: domain.ActionExtend}
		}

		currentEnd := daterange.Day(r.EndDate)
		if !newEnd.After(currentEnd) {
			return domain.ErrInvalidExtension
		}

		free, err := availability.NewService(tx.Reservations).IsAvailable(ctx, r.VehicleID, currentEnd, newEnd, r.ID)
		if err != nil {
			return err
		}
		if !free {
			return domain.ErrVehicleUnavailable
		}

		days := daterange.DaysBetween(currentEnd, newEnd)
		ext = &domain.Extension{
			NewEndDate:     newEnd,
			AdditionalDays: days,
			AdditionalCost: r.PricePerDay() * float64(days),
		}
		if err := s.lifecycle.Extend(ctx, tx, r, ext); err != nil {
			return err
		}

		res = &Result{
			AdditionalDays: ext.AdditionalDays,
			AdditionalCost: ext.AdditionalCost,
			NewTotalPrice:  r.TotalPrice,
			NewEndDate:     r.EndDate,
			Reservation:    r,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrVehicleUnavailable) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	s.lifecycle.AfterCommit(ctx, domain.ActionExtend, res.Reservation, ext)
	return res, nil
}

// ListExtensions returns the reservation's extensions, newest first.
func (s *Service) ListExtensions(ctx context.Context, reservationID int64) ([]domain.Extension, error) {
	return s.store.Extensions.ListByReservation(ctx, reservationID)
}
