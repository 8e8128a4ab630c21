package domain

import (
	"fmt"
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationRejected  ReservationStatus = "rejected"
)

// OccupyingStatuses block the vehicle for the reserved dates.
var OccupyingStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationActive,
}

// RevenueStatuses are summed into the dashboard revenue.
var RevenueStatuses = []ReservationStatus{
	ReservationConfirmed,
	ReservationCompleted,
}

func (s ReservationStatus) IsOccupying() bool {
	for _, o := range OccupyingStatuses {
		if s == o {
			return true
		}
	}
	return false
}

func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationCompleted, ReservationCancelled, ReservationRejected:
		return true
	}
	return false
}

func (s ReservationStatus) Valid() bool {
	return s.IsOccupying() || s.IsTerminal()
}

func ParseReservationStatus(raw string) (ReservationStatus, error) {
	s := ReservationStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown reservation status %q", ErrValidation, raw)
	}
	return s, nil
}

type Reservation struct {
	ID         int64             `json:"id"`
	VehicleID  int64             `json:"vehicle_id" gorm:"not null;index:idx_reservations_vehicle_status"`
	UserID     int64             `json:"user_id" gorm:"not null;index"`
	StartDate  time.Time         `json:"start_date" gorm:"type:date;not null"`
	EndDate    time.Time         `json:"end_date" gorm:"type:date;not null"`
	DayCount   int               `json:"day_count" gorm:"not null"`
	TotalPrice float64           `json:"total_price" gorm:"not null"`
	Status     ReservationStatus `json:"status" gorm:"size:20;not null;index:idx_reservations_vehicle_status"`
	TicketID   string            `json:"ticket_id" gorm:"size:64;uniqueIndex;not null"`
	Extended   bool              `json:"extended" gorm:"not null;default:false"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

// PricePerDay reconstructs the daily rate from the stored totals.
func (r *Reservation) PricePerDay() float64 {
	if r.DayCount <= 0 {
		return 0
	}
	return r.TotalPrice / float64(r.DayCount)
}
