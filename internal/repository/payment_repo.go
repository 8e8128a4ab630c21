package repository

import (
	"context"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return translate("create payment", r.db.WithContext(ctx).Create(p).Error)
}

func (r *PaymentRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate("list payments", err)
	}
	return out, nil
}
