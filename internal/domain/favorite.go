package domain

import "time"

// Favorite marks a vehicle the user wants to find again.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_vehicle"`
	VehicleID int64     `json:"vehicle_id" gorm:"not null;uniqueIndex:idx_user_vehicle"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}
