package repository

import (
	"context"
	"time"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type ReservationFilter struct {
	UserID int64
	Status domain.ReservationStatus
	Limit  int
	Offset int
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return translate("create reservation", r.db.WithContext(ctx).Omit("Vehicle").Create(res).Error)
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, translate("get reservation", err)
	}
	return &res, nil
}

func (r *ReservationRepository) GetByTicket(ctx context.Context, ticketID string) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("ticket_id = ?", ticketID).
		First(&res).Error
	if err != nil {
		return nil, translate("get reservation by ticket", err)
	}
	return &res, nil
}

// ListOccupying returns reservations of the vehicle that still block it,
// skipping excludeID when it is non-zero.
func (r *ReservationRepository) ListOccupying(ctx context.Context, vehicleID, excludeID int64) ([]domain.Reservation, error) {
	q := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status IN ?", vehicleID, domain.OccupyingStatuses)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var out []domain.Reservation
	if err := q.Order("start_date ASC").Find(&out).Error; err != nil {
		return nil, translate("list occupying reservations", err)
	}
	return out, nil
}

// UpdateStatus moves the reservation from one status to another on behalf
// of action. The conditional WHERE rejects a write racing with another
// transition.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, action domain.Action, from, to domain.ReservationStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return translate("update reservation status", res.Error)
	}
	if res.RowsAffected == 0 {
		return &domain.TransitionError{From: from, Action: action}
	}
	return nil
}

func (r *ReservationRepository) ApplyExtension(ctx context.Context, id int64, newEnd time.Time, dayCount int, totalPrice float64) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"end_date":    newEnd,
			"day_count":   dayCount,
			"total_price": totalPrice,
			"extended":    true,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return translate("extend reservation", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReservationRepository) List(ctx context.Context, f ReservationFilter) ([]domain.Reservation, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Reservation{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate("count reservations", err)
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var out []domain.Reservation
	if err := q.Preload("Vehicle").Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, 0, translate("list reservations", err)
	}
	return out, total, nil
}

func (r *ReservationRepository) Count(ctx context.Context, statuses ...domain.ReservationStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Reservation{})
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, translate("count reservations", err)
	}
	return n, nil
}

func (r *ReservationRepository) SumTotal(ctx context.Context, statuses ...domain.ReservationStatus) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("status IN ?", statuses).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, translate("sum revenue", err)
	}
	return sum, nil
}
