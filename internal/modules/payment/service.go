package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carrental/internal/domain"
	"carrental/internal/pkg/ticket"
	"carrental/internal/repository"

	"github.com/rs/zerolog"
)

// Service records payments against reservations. Payments never change the
// reservation status.
type Service struct {
	payments     PaymentRepository
	reservations ReservationReader
	log          zerolog.Logger
	now          func() time.Time
}

func NewService(payments PaymentRepository, reservations ReservationReader, log zerolog.Logger) *Service {
	return &Service{
		payments:     payments,
		reservations: reservations,
		log:          log,
		now:          time.Now,
	}
}

func ParseMethod(raw string) (domain.PaymentMethod, error) {
	m := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case domain.PaymentCard, domain.PaymentCash, domain.PaymentTransfer:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, raw)
}

func (s *Service) RecordPayment(ctx context.Context, actor domain.Actor, reservationID int64, amount float64, method string) (*domain.Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}

	r, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(r.UserID) {
		return nil, domain.ErrForbidden
	}
	if r.Status == domain.ReservationCancelled || r.Status == domain.ReservationRejected {
		return nil, fmt.Errorf("%w: reservation is %s", domain.ErrInvalidStateTransition, r.Status)
	}

	p := &domain.Payment{
		ReservationID: r.ID,
		UserID:        r.UserID,
		Amount:        amount,
		Method:        m,
		Reference:     s.reference(),
		Status:        domain.PaymentValidated,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		if repository.IsUniqueViolation(err) {
			// one retry with a fresh reference
			p.Reference = s.reference()
			err = s.payments.Create(ctx, p)
		}
		if err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Int64("reservation_id", r.ID).
		Str("reference", p.Reference).
		Float64("amount", p.Amount).
		Msg("payment recorded")
	return p, nil
}

func (s *Service) ListPayments(ctx context.Context, actor domain.Actor, reservationID int64) ([]domain.Payment, error) {
	r, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(r.UserID) {
		return nil, domain.ErrForbidden
	}
	return s.payments.ListByReservation(ctx, reservationID)
}

func (s *Service) reference() string {
	return fmt.Sprintf("PAY-%d-%s", s.now().UnixMilli(), ticket.RandomCode(6))
}
