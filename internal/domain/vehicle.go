package domain

import "time"

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

// Vehicle status is written only by the reservation lifecycle.
type Vehicle struct {
	ID           int64         `json:"id"`
	Make         string        `json:"make" gorm:"size:100;not null" validate:"required"`
	Model        string        `json:"model" gorm:"size:100;not null" validate:"required"`
	Year         int           `json:"year" validate:"required,gte=1950,lte=2100"`
	Color        string        `json:"color" gorm:"size:50"`
	Type         string        `json:"type" gorm:"size:50;index"`
	Seats        int           `json:"seats" validate:"required,gte=1,lte=60"`
	Transmission Transmission  `json:"transmission" gorm:"size:20" validate:"required,oneof=manual automatic"`
	PricePerDay  float64       `json:"price_per_day" gorm:"not null" validate:"required,gt=0"`
	Plate        string        `json:"plate" gorm:"size:20;uniqueIndex;not null" validate:"required"`
	Description  string        `json:"description,omitempty" gorm:"type:text"`
	Photos       string        `json:"-" gorm:"type:text"`
	Status       VehicleStatus `json:"status" gorm:"size:20;index;not null;default:available"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
