package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental/internal/domain"
	"carrental/internal/metrics"
	"carrental/internal/modules/availability"
	"carrental/internal/pkg/daterange"
	"carrental/internal/pkg/ticket"
	"carrental/internal/repository"

	"github.com/rs/zerolog"
)

const maxTicketAttempts = 3

type Service struct {
	store     *repository.Store
	lifecycle Lifecycle
	log       zerolog.Logger
	now       func() time.Time
}

func NewService(store *repository.Store, lifecycle Lifecycle, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		lifecycle: lifecycle,
		log:       log,
		now:       time.Now,
	}
}

// CheckAvailability reports whether the vehicle can be booked for [start, end].
// A vehicle under maintenance is never available.
func (s *Service) CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	if _, err := daterange.New(start, end); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	v, err := s.store.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return false, err
	}
	if v.Status == domain.VehicleMaintenance {
		return false, nil
	}
	return availability.NewService(s.store.Reservations).IsAvailable(ctx, vehicleID, start, end, 0)
}

// CreateBooking opens a pending reservation. The availability check, the
// insert and the vehicle status change commit together or not at all.
func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Reservation, error) {
	rng, err := daterange.New(in.StartDate, in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if in.UserID <= 0 || in.VehicleID <= 0 || in.PricePerDay < 0 {
		return nil, domain.ErrValidation
	}

	var r *domain.Reservation
	for attempt := 1; ; attempt++ {
		r, err = s.createOnce(ctx, in, rng)
		if errors.Is(err, domain.ErrDuplicateTicket) && attempt < maxTicketAttempts {
			s.log.Debug().Int("attempt", attempt).Int64("vehicle_id", in.VehicleID).Msg("ticket collision, retrying")
			continue
		}
		break
	}
	if err != nil {
		if errors.Is(err, domain.ErrVehicleUnavailable) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	s.lifecycle.AfterCommit(ctx, domain.ActionCreate, r, nil)
	return r, nil
}

func (s *Service) createOnce(ctx context.Context, in CreateBookingInput, rng daterange.Range) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		vehicle, err := tx.Vehicles.GetForUpdate(ctx, in.VehicleID)
		if err != nil {
			return err
		}
		if vehicle.Status == domain.VehicleMaintenance {
			return domain.ErrVehicleUnavailable
		}

		free, err := availability.NewService(tx.Reservations).IsAvailable(ctx, vehicle.ID, rng.Start, rng.End, 0)
		if err != nil {
			return err
		}
		if !free {
			return domain.ErrVehicleUnavailable
		}

		price := in.PricePerDay
		if price == 0 {
			price = vehicle.PricePerDay
		}
		days := rng.Days()

		r := &domain.Reservation{
			UserID:     in.UserID,
			StartDate:  rng.Start,
			EndDate:    rng.End,
			DayCount:   days,
			TotalPrice: price * float64(days),
			TicketID:   ticket.New(vehicle.ID, s.now()),
		}
		if err := s.lifecycle.Create(ctx, tx, vehicle, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
