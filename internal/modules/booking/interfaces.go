package booking

import (
	"context"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

// Lifecycle is the subset of reservation.Lifecycle used to open reservations.
type Lifecycle interface {
	Create(ctx context.Context, tx *repository.Store, vehicle *domain.Vehicle, r *domain.Reservation) error
	AfterCommit(ctx context.Context, action domain.Action, r *domain.Reservation, ext *domain.Extension)
}
