package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"carrental/internal/domain"
	"carrental/internal/repository"
	"carrental/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, msg domain.OutboxMessage) error {
	args := m.Called(ctx, msg.Type)
	return args.Error(0)
}

func TestEnqueue_WritesPayload(t *testing.T) {
	store := repository.NewStore(testutil.NewDB(t))
	ctx := context.Background()

	r := &domain.Reservation{
		ID: 7, VehicleID: 3, UserID: 9, TicketID: "CAR-3-ABCDEF-1",
		Status:    domain.ReservationConfirmed,
		StartDate: testutil.Date("2024-06-01"), EndDate: testutil.Date("2024-06-06"),
		DayCount: 5, TotalPrice: 50000,
	}
	ext := &domain.Extension{AdditionalDays: 2, AdditionalCost: 20000}

	msg, err := Enqueue(ctx, store.Outbox, domain.ActionExtend, r, ext)
	require.NoError(t, err)
	assert.Equal(t, EventReservationExtended, msg.Type)

	var p ReservationPayload
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &p))
	assert.Equal(t, int64(7), p.ReservationID)
	assert.Equal(t, "2024-06-06", p.EndDate)
	assert.Equal(t, 20000.0, p.AdditionalCost)

	batch, err := store.Outbox.PendingBatch(ctx, 5, 10)
	require.NoError(t, err)
	assert.Len(t, batch, 1)
}

func TestDispatcher_DispatchOnce(t *testing.T) {
	store := repository.NewStore(testutil.NewDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Outbox.Insert(ctx, &domain.OutboxMessage{ID: "ok", Type: EventReservationCreated, Payload: "{}", OccurredAt: now}))
	require.NoError(t, store.Outbox.Insert(ctx, &domain.OutboxMessage{ID: "bad", Type: EventReservationRejected, Payload: "{}", OccurredAt: now.Add(time.Second)}))

	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, EventReservationCreated).Return(nil)
	pub.On("Publish", mock.Anything, EventReservationRejected).Return(errors.New("broker down"))

	d := NewDispatcher(store.Outbox, pub, 2, 10, testutil.Logger())

	n, err := d.DispatchOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = d.DispatchOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// retries exhausted after two failures
	n, err = d.DispatchOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	pub.AssertNumberOfCalls(t, "Publish", 3)
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	store := repository.NewStore(testutil.NewDB(t))
	pub := new(MockPublisher)
	d := NewDispatcher(store.Outbox, pub, 3, 10, testutil.Logger())
	s := NewScheduler(d, 10*time.Millisecond, testutil.Logger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestEventType(t *testing.T) {
	assert.Equal(t, EventReservationApproved, EventType(domain.ActionApprove))
	assert.Equal(t, "reservation.audit", EventType(domain.Action("audit")))
}
