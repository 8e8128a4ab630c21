package availability

import (
	"context"
	"time"

	"carrental/internal/domain"
	"carrental/internal/pkg/daterange"
)

type ReservationFinder interface {
	ListOccupying(ctx context.Context, vehicleID, excludeID int64) ([]domain.Reservation, error)
}

type Service struct {
	reservations ReservationFinder
}

func NewService(reservations ReservationFinder) *Service {
	return &Service{reservations: reservations}
}

// IsAvailable reports whether no occupying reservation of the vehicle
// overlaps [start, end]. excludeID (when non-zero) is ignored, which lets a
// reservation be checked against everything except itself.
func (s *Service) IsAvailable(ctx context.Context, vehicleID int64, start, end time.Time, excludeID int64) (bool, error) {
	want, err := daterange.New(start, end)
	if err != nil {
		return false, domain.ErrValidation
	}

	existing, err := s.reservations.ListOccupying(ctx, vehicleID, excludeID)
	if err != nil {
		return false, err
	}
	return Free(existing, want, excludeID), nil
}

// Free applies the overlap check to an already loaded reservation set.
func Free(existing []domain.Reservation, want daterange.Range, excludeID int64) bool {
	for _, r := range existing {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if !r.Status.IsOccupying() {
			continue
		}
		held := daterange.Range{Start: daterange.Day(r.StartDate), End: daterange.Day(r.EndDate)}
		if daterange.Overlaps(held, want) {
			return false
		}
	}
	return true
}
