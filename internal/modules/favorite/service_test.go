package favorite

import (
	"context"
	"testing"

	"carrental/internal/domain"
	"carrental/internal/repository"
	"carrental/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	svc := NewService(store.Favorites, store.Vehicles)
	ctx := context.Background()

	u := testutil.SeedUser(t, db, domain.RoleUser)
	v1 := testutil.SeedVehicle(t, db, 100)
	v2 := testutil.SeedVehicle(t, db, 200)

	fav, err := svc.Add(ctx, u.ID, v1.ID)
	require.NoError(t, err)
	require.NotNil(t, fav.Vehicle)
	assert.Equal(t, v1.Plate, fav.Vehicle.Plate)

	again, err := svc.Add(ctx, u.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, fav.ID, again.ID)

	_, err = svc.Add(ctx, u.ID, v2.ID)
	require.NoError(t, err)

	list, total, err := svc.List(ctx, u.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.NotNil(t, list[0].Vehicle)

	ok, err := svc.IsFavorite(ctx, u.ID, v1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Remove(ctx, u.ID, v1.ID))
	ok, err = svc.IsFavorite(ctx, u.ID, v1.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, svc.Remove(ctx, u.ID, v1.ID), domain.ErrNotFound)
}

func TestFavorites_UnknownVehicle(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	svc := NewService(store.Favorites, store.Vehicles)

	u := testutil.SeedUser(t, db, domain.RoleUser)
	_, err := svc.Add(context.Background(), u.ID, 4242)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToFavoriteListResponse_Pages(t *testing.T) {
	resp := ToFavoriteListResponse(make([]domain.Favorite, 3), 41, 2, 20)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Favorites, 3)
}
