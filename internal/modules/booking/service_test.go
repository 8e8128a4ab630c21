package booking

import (
	"context"
	"sync"
	"testing"

	"carrental/internal/domain"
	"carrental/internal/modules/reservation"
	"carrental/internal/repository"
	"carrental/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *repository.Store
	service *Service
	vehicle *domain.Vehicle
	user    *domain.User
}

func setup(t *testing.T, price float64) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	lc := reservation.NewLifecycle(nil, testutil.Logger())
	return &fixture{
		store:   store,
		service: NewService(store, lc, testutil.Logger()),
		vehicle: testutil.SeedVehicle(t, db, price),
		user:    testutil.SeedUser(t, db, domain.RoleUser),
	}
}

func (f *fixture) input(start, end string) CreateBookingInput {
	return CreateBookingInput{
		UserID:    f.user.ID,
		VehicleID: f.vehicle.ID,
		StartDate: testutil.Date(start),
		EndDate:   testutil.Date(end),
	}
}

func TestCreateBooking_PricesAndHoldsVehicle(t *testing.T) {
	f := setup(t, 100)
	ctx := context.Background()

	r, err := f.service.CreateBooking(ctx, f.input("2024-06-01", "2024-06-04"))
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationPending, r.Status)
	assert.Equal(t, 3, r.DayCount)
	assert.Equal(t, 300.0, r.TotalPrice)
	assert.Regexp(t, `^CAR-\d+-[0-9A-F]{6}-\d+$`, r.TicketID)

	v, err := f.store.Vehicles.GetByID(ctx, f.vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleRented, v.Status)
}

func TestCreateBooking_ExplicitPrice(t *testing.T) {
	f := setup(t, 100)
	in := f.input("2024-06-01", "2024-06-03")
	in.PricePerDay = 75

	r, err := f.service.CreateBooking(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 150.0, r.TotalPrice)
}

func TestCreateBooking_ThenCheckAvailabilityIsFalse(t *testing.T) {
	f := setup(t, 100)
	ctx := context.Background()
	in := f.input("2024-06-01", "2024-06-04")

	free, err := f.service.CheckAvailability(ctx, f.vehicle.ID, in.StartDate, in.EndDate)
	require.NoError(t, err)
	assert.True(t, free)

	_, err = f.service.CreateBooking(ctx, in)
	require.NoError(t, err)

	free, err = f.service.CheckAvailability(ctx, f.vehicle.ID, in.StartDate, in.EndDate)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestCreateBooking_OverlapRejected(t *testing.T) {
	f := setup(t, 100)
	ctx := context.Background()
	_, err := f.service.CreateBooking(ctx, f.input("2024-06-01", "2024-06-04"))
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end string
		wantErr    error
	}{
		{"inside", "2024-06-02", "2024-06-03", domain.ErrVehicleUnavailable},
		{"shared end boundary", "2024-06-04", "2024-06-06", domain.ErrVehicleUnavailable},
		{"shared start boundary", "2024-05-28", "2024-06-01", domain.ErrVehicleUnavailable},
		{"after", "2024-06-05", "2024-06-07", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.CreateBooking(ctx, f.input(tc.start, tc.end))
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	n, err := f.store.Reservations.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCreateBooking_TerminalReservationsDoNotBlock(t *testing.T) {
	f := setup(t, 100)
	db := f.store.DB()
	testutil.SeedReservation(t, db, f.vehicle.ID, f.user.ID, "2024-06-01", "2024-06-04", domain.ReservationCancelled, 300)
	testutil.SeedReservation(t, db, f.vehicle.ID, f.user.ID, "2024-06-01", "2024-06-04", domain.ReservationRejected, 300)

	_, err := f.service.CreateBooking(context.Background(), f.input("2024-06-02", "2024-06-03"))
	assert.NoError(t, err)
}

func TestCreateBooking_Validation(t *testing.T) {
	f := setup(t, 100)
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, f.input("2024-06-04", "2024-06-01"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.service.CreateBooking(ctx, f.input("2024-06-04", "2024-06-04"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	in := f.input("2024-06-01", "2024-06-02")
	in.VehicleID = 9999
	_, err = f.service.CreateBooking(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBooking_MaintenanceVehicle(t *testing.T) {
	f := setup(t, 100)
	ctx := context.Background()
	require.NoError(t, f.store.Vehicles.UpdateStatus(ctx, f.vehicle.ID, domain.VehicleMaintenance))

	_, err := f.service.CreateBooking(ctx, f.input("2024-06-01", "2024-06-02"))
	assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)

	free, err := f.service.CheckAvailability(ctx, f.vehicle.ID, testutil.Date("2024-06-01"), testutil.Date("2024-06-02"))
	require.NoError(t, err)
	assert.False(t, free)
}

func TestCreateBooking_ConcurrentOverlapsExactlyOneWins(t *testing.T) {
	f := setup(t, 50)
	ctx := context.Background()

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every request overlaps every other on 2024-08-05
			start := testutil.Date("2024-08-01").AddDate(0, 0, i%4)
			_, err := f.service.CreateBooking(ctx, CreateBookingInput{
				UserID:    f.user.ID,
				VehicleID: f.vehicle.ID,
				StartDate: start,
				EndDate:   testutil.Date("2024-08-05").AddDate(0, 0, i%3),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, domain.ErrVehicleUnavailable):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)

	occupying, err := f.store.Reservations.ListOccupying(ctx, f.vehicle.ID, 0)
	require.NoError(t, err)
	assert.Len(t, occupying, 1)
}

type mockLifecycle struct {
	mock.Mock
}

func (m *mockLifecycle) Create(ctx context.Context, tx *repository.Store, vehicle *domain.Vehicle, r *domain.Reservation) error {
	args := m.Called(ctx, tx, vehicle, r)
	return args.Error(0)
}

func (m *mockLifecycle) AfterCommit(ctx context.Context, action domain.Action, r *domain.Reservation, ext *domain.Extension) {
	m.Called(ctx, action, r, ext)
}

func TestCreateBooking_RetriesTicketCollision(t *testing.T) {
	f := setup(t, 100)
	lc := new(mockLifecycle)
	lc.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrDuplicateTicket).Twice()
	lc.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	lc.On("AfterCommit", mock.Anything, domain.ActionCreate, mock.Anything, (*domain.Extension)(nil)).Once()

	svc := NewService(f.store, lc, testutil.Logger())
	_, err := svc.CreateBooking(context.Background(), f.input("2024-06-01", "2024-06-02"))
	require.NoError(t, err)
	lc.AssertNumberOfCalls(t, "Create", 3)
	lc.AssertExpectations(t)
}

func TestCreateBooking_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := setup(t, 100)
	lc := new(mockLifecycle)
	lc.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrDuplicateTicket)

	svc := NewService(f.store, lc, testutil.Logger())
	_, err := svc.CreateBooking(context.Background(), f.input("2024-06-01", "2024-06-02"))
	assert.ErrorIs(t, err, domain.ErrDuplicateTicket)
	lc.AssertNumberOfCalls(t, "Create", maxTicketAttempts)
	lc.AssertNotCalled(t, "AfterCommit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
