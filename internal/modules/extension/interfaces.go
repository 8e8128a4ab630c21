package extension

import (
	"context"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

type Lifecycle interface {
	LoadLocked(ctx context.Context, tx *repository.Store, id int64) (*domain.Reservation, *domain.Vehicle, error)
	Extend(ctx context.Context, tx *repository.Store, r *domain.Reservation, ext *domain.Extension) error
	AfterCommit(ctx context.Context, action domain.Action, r *domain.Reservation, ext *domain.Extension)
}

// AccessChecker resolves a reservation for the calling user.
type AccessChecker interface {
	GetForActor(ctx context.Context, id int64, actor domain.Actor) (*domain.Reservation, error)
}
