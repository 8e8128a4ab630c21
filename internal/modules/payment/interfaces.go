package payment

import (
	"context"

	"carrental/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error)
}

type ReservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}
