package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"carrental/internal/domain"
	"carrental/internal/events"
	"carrental/internal/pkg/ticket"
	"carrental/internal/repository"
	"carrental/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
	return nil
}

func (b *recordingBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store     *repository.Store
	lifecycle *Lifecycle
	service   *Service
	bus       *recordingBus
	vehicle   *domain.Vehicle
	user      *domain.User
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	bus := &recordingBus{}
	lc := NewLifecycle(bus, testutil.Logger())
	return &fixture{
		store:     store,
		lifecycle: lc,
		service:   NewService(store, lc),
		bus:       bus,
		vehicle:   testutil.SeedVehicle(t, db, 100),
		user:      testutil.SeedUser(t, db, domain.RoleUser),
	}
}

// create books through the lifecycle the way the booking flow does.
func (f *fixture) create(t *testing.T, start, end string) *domain.Reservation {
	t.Helper()
	ctx := context.Background()
	s, e := testutil.Date(start), testutil.Date(end)
	days := int(e.Sub(s).Hours() / 24)

	r := &domain.Reservation{
		UserID:     f.user.ID,
		StartDate:  s,
		EndDate:    e,
		DayCount:   days,
		TotalPrice: float64(days) * f.vehicle.PricePerDay,
		TicketID:   ticket.New(f.vehicle.ID, time.Now()),
	}
	err := f.store.Transaction(ctx, func(tx *repository.Store) error {
		v, err := tx.Vehicles.GetForUpdate(ctx, f.vehicle.ID)
		if err != nil {
			return err
		}
		return f.lifecycle.Create(ctx, tx, v, r)
	})
	require.NoError(t, err)
	f.lifecycle.AfterCommit(ctx, domain.ActionCreate, r, nil)
	return r
}

func (f *fixture) vehicleStatus(t *testing.T) domain.VehicleStatus {
	t.Helper()
	v, err := f.store.Vehicles.GetByID(context.Background(), f.vehicle.ID)
	require.NoError(t, err)
	return v.Status
}

func TestLifecycle_CreateMarksVehicleRented(t *testing.T) {
	f := setup(t)

	r := f.create(t, "2024-06-01", "2024-06-04")

	assert.Equal(t, domain.ReservationPending, r.Status)
	assert.Equal(t, 3, r.DayCount)
	assert.Equal(t, 300.0, r.TotalPrice)
	assert.Equal(t, domain.VehicleRented, f.vehicleStatus(t))
}

func TestService_ApproveThenCancelReleasesVehicle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.create(t, "2024-06-01", "2024-06-04")

	approved, err := f.service.ApproveReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, approved.Status)
	assert.Equal(t, domain.VehicleRented, f.vehicleStatus(t))

	cancelled, err := f.service.CancelReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, cancelled.Status)
	assert.Equal(t, domain.VehicleAvailable, f.vehicleStatus(t))

	assert.Equal(t, []string{
		"reservation.created",
		"reservation.approved",
		"reservation.cancelled",
	}, f.bus.types())
}

func TestService_FullRentalFlow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.create(t, "2024-06-01", "2024-06-04")

	_, err := f.service.ApproveReservation(ctx, r.ID)
	require.NoError(t, err)
	started, err := f.service.StartReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationActive, started.Status)

	done, err := f.service.CompleteReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCompleted, done.Status)
	assert.Equal(t, domain.VehicleAvailable, f.vehicleStatus(t))
}

func TestService_RejectedCannotBeApproved(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.create(t, "2024-06-01", "2024-06-04")

	rejected, err := f.service.RejectReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationRejected, rejected.Status)
	assert.Equal(t, domain.VehicleAvailable, f.vehicleStatus(t))

	_, err = f.service.ApproveReservation(ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, domain.ReservationRejected, te.From)
}

func TestService_PendingCannotBeCancelled(t *testing.T) {
	f := setup(t)
	r := f.create(t, "2024-06-01", "2024-06-04")

	_, err := f.service.CancelReservation(context.Background(), r.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	got, err := f.service.GetReservation(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, got.Status)
}

func TestService_OtherReservationKeepsVehicleRented(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	first := f.create(t, "2024-06-01", "2024-06-04")
	f.create(t, "2024-06-10", "2024-06-12")

	_, err := f.service.RejectReservation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleRented, f.vehicleStatus(t))
}

func TestService_MaintenanceIsNotOverwritten(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.create(t, "2024-06-01", "2024-06-04")
	require.NoError(t, f.store.Vehicles.UpdateStatus(ctx, f.vehicle.ID, domain.VehicleMaintenance))

	_, err := f.service.RejectReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleMaintenance, f.vehicleStatus(t))
}

func TestService_TransitionsWriteOutbox(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.create(t, "2024-06-01", "2024-06-04")
	_, err := f.service.ApproveReservation(ctx, r.ID)
	require.NoError(t, err)

	pending, err := f.store.Outbox.PendingBatch(ctx, 5, 10)
	require.NoError(t, err)
	types := make([]string, 0, len(pending))
	for _, m := range pending {
		assert.Equal(t, r.ID, m.AggregateID)
		types = append(types, m.Type)
	}
	assert.ElementsMatch(t, []string{"reservation.created", "reservation.approved"}, types)
}

func TestService_UnknownReservation(t *testing.T) {
	f := setup(t)

	_, err := f.service.ApproveReservation(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_AccessControl(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.create(t, "2024-06-01", "2024-06-04")

	owner := domain.Actor{UserID: f.user.ID, Role: domain.RoleUser}
	stranger := domain.Actor{UserID: f.user.ID + 100, Role: domain.RoleUser}
	admin := domain.Actor{UserID: f.user.ID + 200, Role: domain.RoleAdmin}

	_, err := f.service.GetForActor(ctx, r.ID, owner)
	assert.NoError(t, err)
	_, err = f.service.GetForActor(ctx, r.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.service.GetForActor(ctx, r.ID, admin)
	assert.NoError(t, err)

	got, err := f.service.GetByTicket(ctx, r.TicketID, owner)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	require.NotNil(t, got.Vehicle)

	_, err = f.service.GetByTicket(ctx, "not-a-ticket", owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListForUser(t *testing.T) {
	f := setup(t)
	f.create(t, "2024-06-01", "2024-06-04")
	f.create(t, "2024-07-01", "2024-07-02")

	list, total, err := f.service.ListForUser(context.Background(), f.user.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}

func TestService_SetVehicleMaintenance(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.create(t, "2024-06-01", "2024-06-04")

	before := len(f.bus.types())

	v, err := f.service.SetVehicleMaintenance(ctx, f.vehicle.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleMaintenance, v.Status)
	assert.Equal(t, domain.VehicleMaintenance, f.vehicleStatus(t))

	v, err = f.service.SetVehicleMaintenance(ctx, f.vehicle.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleRented, v.Status)
	assert.Equal(t, domain.VehicleRented, f.vehicleStatus(t))

	assert.Equal(t, []string{events.TypeVehicleStatus, events.TypeVehicleStatus}, f.bus.types()[before:])
	assert.Equal(t, f.vehicle.ID, f.bus.events[len(f.bus.events)-1].SubjectID)
}
