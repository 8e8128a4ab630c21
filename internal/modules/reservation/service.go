package reservation

import (
	"context"
	"errors"

	"carrental/internal/domain"
	"carrental/internal/pkg/ticket"
	"carrental/internal/repository"
)

type Service struct {
	store     *repository.Store
	lifecycle *Lifecycle
}

func NewService(store *repository.Store, lifecycle *Lifecycle) *Service {
	return &Service{store: store, lifecycle: lifecycle}
}

func (s *Service) ApproveReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.apply(ctx, id, domain.ActionApprove)
}

func (s *Service) RejectReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.apply(ctx, id, domain.ActionReject)
}

// StartReservation is the check-in step: confirmed -> active.
func (s *Service) StartReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.apply(ctx, id, domain.ActionStart)
}

func (s *Service) CancelReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.apply(ctx, id, domain.ActionCancel)
}

func (s *Service) CompleteReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.apply(ctx, id, domain.ActionComplete)
}

func (s *Service) apply(ctx context.Context, id int64, action domain.Action) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		r, err := s.lifecycle.Apply(ctx, tx, id, action)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.lifecycle.AfterCommit(ctx, action, out, nil)
	return out, nil
}

func (s *Service) SetVehicleMaintenance(ctx context.Context, vehicleID int64, on bool) (*domain.Vehicle, error) {
	var out *domain.Vehicle
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		v, err := s.lifecycle.SetMaintenance(ctx, tx, vehicleID, on)
		out = v
		return err
	})
	if err != nil {
		return nil, err
	}
	s.lifecycle.VehicleChanged(ctx, out)
	return out, nil
}

func (s *Service) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.store.Reservations.GetByID(ctx, id)
}

// GetForActor returns the reservation when the actor owns it or is an admin.
func (s *Service) GetForActor(ctx context.Context, id int64, actor domain.Actor) (*domain.Reservation, error) {
	r, err := s.store.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(r.UserID) {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

func (s *Service) GetByTicket(ctx context.Context, ticketID string, actor domain.Actor) (*domain.Reservation, error) {
	if _, err := ticket.Parse(ticketID); err != nil {
		if errors.Is(err, ticket.ErrMalformed) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	r, err := s.store.Reservations.GetByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(r.UserID) {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.Reservations.List(ctx, repository.ReservationFilter{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
}
