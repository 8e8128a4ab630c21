package repository

import (
	"context"
	"strings"

	"carrental/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type VehicleFilter struct {
	Type         string
	Color        string
	MinSeats     int
	Transmission string
	MaxPrice     float64
	Search       string
	// IncludeAll lists vehicles in every status, not just available ones.
	IncludeAll bool
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.Status == "" {
		v.Status = domain.VehicleAvailable
	}
	return translate("create vehicle", r.db.WithContext(ctx).Create(v).Error)
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate("get vehicle", err)
	}
	return &v, nil
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).Where("plate = ?", plate).First(&v).Error; err != nil {
		return nil, translate("get vehicle by plate", err)
	}
	return &v, nil
}

// GetForUpdate locks the vehicle row for the rest of the transaction.
// SQLite has no row locks; its single writer gives the same ordering.
func (r *VehicleRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, id).Error
	if err != nil {
		return nil, translate("lock vehicle", err)
	}
	return &v, nil
}

func (r *VehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return translate("update vehicle status", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) List(ctx context.Context, f VehicleFilter) ([]domain.Vehicle, error) {
	q := r.db.WithContext(ctx).Model(&domain.Vehicle{})

	if !f.IncludeAll {
		q = q.Where("status = ?", domain.VehicleAvailable)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Color != "" {
		q = q.Where("LOWER(color) = ?", strings.ToLower(f.Color))
	}
	if f.MinSeats > 0 {
		q = q.Where("seats >= ?", f.MinSeats)
	}
	if f.Transmission != "" {
		q = q.Where("transmission = ?", f.Transmission)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_day <= ?", f.MaxPrice)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(make) LIKE ? OR LOWER(model) LIKE ?", like, like)
	}

	var out []domain.Vehicle
	if err := q.Order("price_per_day ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate("list vehicles", err)
	}
	return out, nil
}

func (r *VehicleRepository) Count(ctx context.Context, statuses ...domain.VehicleStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Vehicle{})
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, translate("count vehicles", err)
	}
	return n, nil
}
