package booking

import "time"

type CreateBookingInput struct {
	UserID    int64
	VehicleID int64
	StartDate time.Time
	EndDate   time.Time
	// PricePerDay overrides the catalog price when positive.
	PricePerDay float64
}

type CreateBookingRequest struct {
	VehicleID int64  `json:"vehicle_id" binding:"required,gt=0"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}
