// Package outbox records reservation events inside the writing transaction
// and later delivers them to the message broker.
package outbox

import (
	"context"
	"encoding/json"
	"time"

	"carrental/internal/domain"

	"github.com/google/uuid"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationApproved  = "reservation.approved"
	EventReservationRejected  = "reservation.rejected"
	EventReservationStarted   = "reservation.started"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationCompleted = "reservation.completed"
	EventReservationExtended  = "reservation.extended"
)

var actionEvents = map[domain.Action]string{
	domain.ActionCreate:   EventReservationCreated,
	domain.ActionApprove:  EventReservationApproved,
	domain.ActionReject:   EventReservationRejected,
	domain.ActionStart:    EventReservationStarted,
	domain.ActionCancel:   EventReservationCancelled,
	domain.ActionComplete: EventReservationCompleted,
	domain.ActionExtend:   EventReservationExtended,
}

func EventType(a domain.Action) string {
	if t, ok := actionEvents[a]; ok {
		return t
	}
	return "reservation." + string(a)
}

// ReservationPayload is the broker message body.
type ReservationPayload struct {
	ReservationID  int64                    `json:"reservation_id"`
	VehicleID      int64                    `json:"vehicle_id"`
	UserID         int64                    `json:"user_id"`
	TicketID       string                   `json:"ticket_id"`
	Status         domain.ReservationStatus `json:"status"`
	StartDate      string                   `json:"start_date"`
	EndDate        string                   `json:"end_date"`
	DayCount       int                      `json:"day_count"`
	TotalPrice     float64                  `json:"total_price"`
	AdditionalDays int                      `json:"additional_days,omitempty"`
	AdditionalCost float64                  `json:"additional_cost,omitempty"`
}

type Inserter interface {
	Insert(ctx context.Context, m *domain.OutboxMessage) error
}

// Enqueue must be called with the transaction-bound repository.
func Enqueue(ctx context.Context, repo Inserter, action domain.Action, r *domain.Reservation, ext *domain.Extension) (*domain.OutboxMessage, error) {
	p := ReservationPayload{
		ReservationID: r.ID,
		VehicleID:     r.VehicleID,
		UserID:        r.UserID,
		TicketID:      r.TicketID,
		Status:        r.Status,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		DayCount:      r.DayCount,
		TotalPrice:    r.TotalPrice,
	}
	if ext != nil {
		p.AdditionalDays = ext.AdditionalDays
		p.AdditionalCost = ext.AdditionalCost
	}

	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	msg := &domain.OutboxMessage{
		ID:          uuid.NewString(),
		Type:        EventType(action),
		AggregateID: r.ID,
		Payload:     string(body),
		OccurredAt:  time.Now().UTC(),
	}
	if err := repo.Insert(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
