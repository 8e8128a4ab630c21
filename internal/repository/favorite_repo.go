package repository

import (
	"context"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add is idempotent: adding an existing favorite returns the stored row.
func (r *FavoriteRepository) Add(ctx context.Context, userID, vehicleID int64) (*domain.Favorite, error) {
	fav := domain.Favorite{UserID: userID, VehicleID: vehicleID}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		FirstOrCreate(&fav).Error
	if err != nil {
		return nil, translate("add favorite", err)
	}
	return &fav, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, vehicleID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return translate("remove favorite", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser returns the user's favorites with their vehicles, newest first.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, translate("count favorites", err)
	}

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Vehicle").
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var out []domain.Favorite
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, translate("list favorites", err)
	}
	return out, total, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, vehicleID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		Count(&n).Error
	if err != nil {
		return false, translate("check favorite", err)
	}
	return n > 0, nil
}
