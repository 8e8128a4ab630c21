package availability

import (
	"context"
	"errors"
	"testing"

	"carrental/internal/domain"
	"carrental/internal/pkg/daterange"
	"carrental/internal/repository"
	"carrental/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationFinder struct {
	mock.Mock
}

func (m *MockReservationFinder) ListOccupying(ctx context.Context, vehicleID, excludeID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, vehicleID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func held(id int64, start, end string, status domain.ReservationStatus) domain.Reservation {
	return domain.Reservation{
		ID: id, VehicleID: 1, Status: status,
		StartDate: testutil.Date(start), EndDate: testutil.Date(end),
	}
}

func TestService_IsAvailable(t *testing.T) {
	ctx := context.Background()
	finder := new(MockReservationFinder)
	finder.On("ListOccupying", ctx, int64(1), int64(0)).Return([]domain.Reservation{
		held(10, "2024-06-01", "2024-06-04", domain.ReservationConfirmed),
	}, nil)

	svc := NewService(finder)

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"overlapping", "2024-06-03", "2024-06-05", false},
		{"touching end", "2024-06-04", "2024-06-08", false},
		{"touching start", "2024-05-28", "2024-06-01", false},
		{"after", "2024-06-05", "2024-06-08", true},
		{"before", "2024-05-20", "2024-05-31", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.IsAvailable(ctx, 1, testutil.Date(tt.start), testutil.Date(tt.end), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestService_IsAvailable_InvalidRange(t *testing.T) {
	svc := NewService(new(MockReservationFinder))
	_, err := svc.IsAvailable(context.Background(), 1, testutil.Date("2024-06-04"), testutil.Date("2024-06-04"), 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_IsAvailable_StoreError(t *testing.T) {
	ctx := context.Background()
	finder := new(MockReservationFinder)
	boom := errors.New("db down")
	finder.On("ListOccupying", ctx, int64(1), int64(0)).Return(nil, boom)

	_, err := NewService(finder).IsAvailable(ctx, 1, testutil.Date("2024-06-01"), testutil.Date("2024-06-02"), 0)
	assert.ErrorIs(t, err, boom)
}

func TestFree_SkipsExcludedAndTerminal(t *testing.T) {
	want := daterange.Range{Start: testutil.Date("2024-06-02"), End: testutil.Date("2024-06-03")}
	existing := []domain.Reservation{
		held(1, "2024-06-01", "2024-06-04", domain.ReservationActive),
		held(2, "2024-06-01", "2024-06-04", domain.ReservationCancelled),
	}

	assert.False(t, Free(existing, want, 0))
	assert.True(t, Free(existing, want, 1))
}

func TestService_IsAvailable_AgainstStore(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	v := testutil.SeedVehicle(t, db, 100)
	u := testutil.SeedUser(t, db, domain.RoleUser)
	r := testutil.SeedReservation(t, db, v.ID, u.ID, "2024-06-01", "2024-06-04", domain.ReservationPending, 300)
	testutil.SeedReservation(t, db, v.ID, u.ID, "2024-07-01", "2024-07-04", domain.ReservationRejected, 300)

	svc := NewService(store.Reservations)
	ctx := context.Background()

	ok, err := svc.IsAvailable(ctx, v.ID, testutil.Date("2024-06-04"), testutil.Date("2024-06-06"), 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsAvailable(ctx, v.ID, testutil.Date("2024-06-04"), testutil.Date("2024-06-06"), r.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAvailable(ctx, v.ID, testutil.Date("2024-07-02"), testutil.Date("2024-07-03"), 0)
	require.NoError(t, err)
	assert.True(t, ok)
}
