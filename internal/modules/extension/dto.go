package extension

import (
	"time"

	"carrental/internal/domain"
	"carrental/internal/pkg/daterange"
)

type Result struct {
	AdditionalDays int
	AdditionalCost float64
	NewTotalPrice  float64
	NewEndDate     time.Time
	Reservation    *domain.Reservation
}

type ExtendRequest struct {
	NewEndDate string `json:"new_end_date" binding:"required"`
}

type ExtendResponse struct {
	ReservationID  int64   `json:"reservation_id"`
	AdditionalDays int     `json:"additional_days"`
	AdditionalCost float64 `json:"additional_cost"`
	NewTotalPrice  float64 `json:"new_total_price"`
	NewEndDate     string  `json:"new_end_date"`
	DayCount       int     `json:"day_count"`
}

type ExtensionResponse struct {
	ID             int64     `json:"id"`
	OldEndDate     string    `json:"old_end_date"`
	NewEndDate     string    `json:"new_end_date"`
	AdditionalDays int       `json:"additional_days"`
	AdditionalCost float64   `json:"additional_cost"`
	CreatedAt      time.Time `json:"created_at"`
}

func toExtendResponse(res *Result) ExtendResponse {
	return ExtendResponse{
		ReservationID:  res.Reservation.ID,
		AdditionalDays: res.AdditionalDays,
		AdditionalCost: res.AdditionalCost,
		NewTotalPrice:  res.NewTotalPrice,
		NewEndDate:     res.NewEndDate.Format(daterange.Layout),
		DayCount:       res.Reservation.DayCount,
	}
}

func toExtensionResponses(list []domain.Extension) []ExtensionResponse {
	out := make([]ExtensionResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ExtensionResponse{
			ID:             e.ID,
			OldEndDate:     e.OldEndDate.Format(daterange.Layout),
			NewEndDate:     e.NewEndDate.Format(daterange.Layout),
			AdditionalDays: e.AdditionalDays,
			AdditionalCost: e.AdditionalCost,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out
}
