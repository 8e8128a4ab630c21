package domain

import "time"

type NotificationType string

const (
	NotifReservationCreated   NotificationType = "reservation_created"
	NotifReservationApproved  NotificationType = "reservation_approved"
	NotifReservationRejected  NotificationType = "reservation_rejected"
	NotifReservationStarted   NotificationType = "reservation_started"
	NotifReservationCancelled NotificationType = "reservation_cancelled"
	NotifReservationCompleted NotificationType = "reservation_completed"
	NotifReservationExtended  NotificationType = "reservation_extended"
)

type Notification struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"user_id" gorm:"not null;index"`
	ReservationID *int64           `json:"reservation_id,omitempty" gorm:"index"`
	Type          NotificationType `json:"type" gorm:"size:40;not null"`
	Title         string           `json:"title" gorm:"size:255;not null"`
	Message       string           `json:"message,omitempty" gorm:"type:text"`
	IsRead        bool             `json:"is_read" gorm:"not null;default:false"`
	CreatedAt     time.Time        `json:"created_at"`
}
