package domain

import "time"

// Extension is append-only.
type Extension struct {
	ID             int64     `json:"id"`
	ReservationID  int64     `json:"reservation_id" gorm:"not null;index"`
	OldEndDate     time.Time `json:"old_end_date" gorm:"type:date;not null"`
	NewEndDate     time.Time `json:"new_end_date" gorm:"type:date;not null"`
	AdditionalDays int       `json:"additional_days" gorm:"not null"`
	AdditionalCost float64   `json:"additional_cost" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}
