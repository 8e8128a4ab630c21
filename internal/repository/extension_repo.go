package repository

import (
	"context"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type ExtensionRepository struct {
	db *gorm.DB
}

func NewExtensionRepository(db *gorm.DB) *ExtensionRepository {
	return &ExtensionRepository{db: db}
}

func (r *ExtensionRepository) Create(ctx context.Context, e *domain.Extension) error {
	return translate("create extension", r.db.WithContext(ctx).Create(e).Error)
}

func (r *ExtensionRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Extension, error) {
	var out []domain.Extension
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate("list extensions", err)
	}
	return out, nil
}
