package catalog

import (
	"time"

	"carrental/internal/domain"
	"carrental/internal/pkg/utils"
)

type CreateVehicleRequest struct {
	Make         string   `json:"make" binding:"required"`
	Model        string   `json:"model" binding:"required"`
	Year         int      `json:"year" binding:"required"`
	Color        string   `json:"color"`
	Type         string   `json:"type"`
	Seats        int      `json:"seats" binding:"required"`
	Transmission string   `json:"transmission" binding:"required"`
	PricePerDay  float64  `json:"price_per_day" binding:"required"`
	Plate        string   `json:"plate" binding:"required"`
	Description  string   `json:"description"`
	Photos       []string `json:"photos"`
}

type MaintenanceRequest struct {
	Maintenance *bool `json:"maintenance" binding:"required"`
}

type VehicleResponse struct {
	ID           int64                `json:"id"`
	Make         string               `json:"make"`
	Model        string               `json:"model"`
	Year         int                  `json:"year"`
	Color        string               `json:"color"`
	Type         string               `json:"type"`
	Seats        int                  `json:"seats"`
	Transmission domain.Transmission  `json:"transmission"`
	PricePerDay  float64              `json:"price_per_day"`
	Plate        string               `json:"plate"`
	Description  string               `json:"description,omitempty"`
	Photos       []string             `json:"photos"`
	Status       domain.VehicleStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}

func ToVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		Color:        v.Color,
		Type:         v.Type,
		Seats:        v.Seats,
		Transmission: v.Transmission,
		PricePerDay:  v.PricePerDay,
		Plate:        v.Plate,
		Description:  v.Description,
		Photos:       utils.DecodePhotos(v.Photos),
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
	}
}

func toVehicleResponses(list []domain.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(list))
	for i := range list {
		out = append(out, ToVehicleResponse(&list[i]))
	}
	return out
}
