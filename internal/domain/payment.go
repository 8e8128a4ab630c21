package domain

import "time"

type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

type PaymentStatus string

const PaymentValidated PaymentStatus = "validated"

type Payment struct {
	ID            int64         `json:"id"`
	ReservationID int64         `json:"reservation_id" gorm:"not null;index"`
	UserID        int64         `json:"user_id" gorm:"not null;index"`
	Amount        float64       `json:"amount" gorm:"not null"`
	Method        PaymentMethod `json:"method" gorm:"size:20;not null"`
	Reference     string        `json:"reference" gorm:"size:64;uniqueIndex;not null"`
	Status        PaymentStatus `json:"status" gorm:"size:20;not null"`
	CreatedAt     time.Time     `json:"created_at"`
}
