// Package events fans committed reservation, vehicle and account changes
// out to in-process subscribers such as notifications and the stats cache.
package events

import (
	"context"
	"sync"
	"time"

	"carrental/internal/domain"
)

// Event types for changes that are not reservation transitions. They carry
// no Action.
const (
	TypeUserRegistered = "user.registered"
	TypeVehicleCreated = "vehicle.created"
	TypeVehicleStatus  = "vehicle.status_changed"
)

// Event is published after the transaction that produced it commits.
type Event struct {
	Type        string
	Action      domain.Action
	Reservation domain.Reservation
	Extension   *domain.Extension
	// SubjectID names the user or vehicle for non-reservation events.
	SubjectID   int64
	OccurredAt  time.Time
}

type Handler func(ctx context.Context, e Event) error

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	any      []Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

func (b *Bus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// SubscribeAll registers h for every event type.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.any = append(b.any, h)
}

// Publish runs handlers synchronously and returns the first handler error.
// Every handler runs even when an earlier one fails.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[e.Type]...)
	hs = append(hs, b.any...)
	b.mu.RUnlock()

	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	var first error
	for _, h := range hs {
		if err := h(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
