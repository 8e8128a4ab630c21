package admin

import (
	"context"

	"carrental/internal/domain"
	"carrental/internal/repository"
)

type VehicleCounter interface {
	Count(ctx context.Context, statuses ...domain.VehicleStatus) (int64, error)
}

type UserReader interface {
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
}

type ReservationReader interface {
	Count(ctx context.Context, statuses ...domain.ReservationStatus) (int64, error)
	SumTotal(ctx context.Context, statuses ...domain.ReservationStatus) (float64, error)
	List(ctx context.Context, f repository.ReservationFilter) ([]domain.Reservation, int64, error)
}
