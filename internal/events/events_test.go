package events

import (
	"context"
	"errors"
	"testing"

	"carrental/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishRoutesByType(t *testing.T) {
	bus := NewBus()
	var typed, all []string

	bus.Subscribe("reservation.approved", func(_ context.Context, e Event) error {
		typed = append(typed, e.Type)
		return nil
	})
	bus.SubscribeAll(func(_ context.Context, e Event) error {
		all = append(all, e.Type)
		return nil
	})

	ctx := context.Background()
	assert.NoError(t, bus.Publish(ctx, Event{Type: "reservation.approved", Action: domain.ActionApprove}))
	assert.NoError(t, bus.Publish(ctx, Event{Type: "reservation.rejected", Action: domain.ActionReject}))

	assert.Equal(t, []string{"reservation.approved"}, typed)
	assert.Equal(t, []string{"reservation.approved", "reservation.rejected"}, all)
}

func TestBus_PublishRunsAllHandlersOnError(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	ran := 0

	bus.SubscribeAll(func(context.Context, Event) error { ran++; return boom })
	bus.SubscribeAll(func(context.Context, Event) error { ran++; return nil })

	err := bus.Publish(context.Background(), Event{Type: "x"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, ran)
}
