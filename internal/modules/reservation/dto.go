package reservation

import (
	"time"

	"carrental/internal/domain"
	"carrental/internal/pkg/daterange"
)

type VehicleSummary struct {
	ID    int64  `json:"id"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

type ReservationResponse struct {
	ID         int64                    `json:"id"`
	VehicleID  int64                    `json:"vehicle_id"`
	UserID     int64                    `json:"user_id"`
	StartDate  string                   `json:"start_date"`
	EndDate    string                   `json:"end_date"`
	DayCount   int                      `json:"day_count"`
	TotalPrice float64                  `json:"total_price"`
	Status     domain.ReservationStatus `json:"status"`
	TicketID   string                   `json:"ticket_id"`
	Extended   bool                     `json:"extended"`
	CreatedAt  time.Time                `json:"created_at"`
	Vehicle    *VehicleSummary          `json:"vehicle,omitempty"`
}

func ToResponse(r *domain.Reservation) ReservationResponse {
	out := ReservationResponse{
		ID:         r.ID,
		VehicleID:  r.VehicleID,
		UserID:     r.UserID,
		StartDate:  r.StartDate.Format(daterange.Layout),
		EndDate:    r.EndDate.Format(daterange.Layout),
		DayCount:   r.DayCount,
		TotalPrice: r.TotalPrice,
		Status:     r.Status,
		TicketID:   r.TicketID,
		Extended:   r.Extended,
		CreatedAt:  r.CreatedAt,
	}
	if r.Vehicle != nil {
		out.Vehicle = &VehicleSummary{
			ID:    r.Vehicle.ID,
			Make:  r.Vehicle.Make,
			Model: r.Vehicle.Model,
			Plate: r.Vehicle.Plate,
		}
	}
	return out
}

func ToResponses(list []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i]))
	}
	return out
}
