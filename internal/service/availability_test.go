package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restoapi/internal/model"
	"restoapi/internal/repository"
	repoMocks "restoapi/internal/repository/mocks"
)

type availabilityDeps struct {
	restaurants *repoMocks.MockRestaurantRepository
	tables      *repoMocks.MockTableRepository
	bookings    *repoMocks.MockBookingRepository
	blocks      *repoMocks.MockTableBlockRepository
}

func newAvailabilityDeps() (*availabilityDeps, AvailabilityService) {
	d := &availabilityDeps{
		restaurants: new(repoMocks.MockRestaurantRepository),
		tables:      new(repoMocks.MockTableRepository),
		bookings:    new(repoMocks.MockBookingRepository),
		blocks:      new(repoMocks.MockTableBlockRepository),
	}
	return d, NewAvailabilityService(d.restaurants, d.tables, d.bookings, d.blocks)
}

func TestAvailabilityService_Search(t *testing.T) {
	ctx := context.Background()
	hanoi := model.Restaurant{ID: "r-1", Name: "Hà Nội", Region: model.RegionNorth}
	haiphong := model.Restaurant{ID: "r-2", Name: "Hải Phòng", Region: model.RegionNorth}

	d, svc := newAvailabilityDeps()
	d.restaurants.On("List", ctx, model.RegionNorth).Return([]model.Restaurant{hanoi, haiphong}, nil)
	d.tables.On("ListBookable", ctx, repository.TableFilter{RestaurantIDs: []string{"r-1", "r-2"}, MinCapacity: 3}).Return([]model.Table{
		{ID: "t-1", RestaurantID: "r-1", TableNumber: 1, Capacity: 4, Type: model.TableTypeNormal},
		{ID: "t-2", RestaurantID: "r-1", TableNumber: 2, Capacity: 6, Type: model.TableTypeVIP},
		{ID: "t-3", RestaurantID: "r-1", TableNumber: 3, Capacity: 4},
		{ID: "t-4", RestaurantID: "r-2", TableNumber: 1, Capacity: 4},
	}, nil)
	d.bookings.On("OccupiedTableIDs", ctx, "2026-10-20", "19:00").Return([]string{"t-1", "t-4"}, nil)
	d.blocks.On("BlockedTableIDs", ctx, "2026-10-20", "19:00").Return([]string{"t-3"}, nil)

	res, err := svc.Search(ctx, AvailabilityQuery{Region: model.RegionNorth, Date: "2026-10-20", Time: "19:00", Adults: 2, Children: 1})
	require.NoError(t, err)

	assert.Equal(t, model.RegionNorth, res.Region)
	require.Len(t, res.AvailableRestaurants, 1, "restaurants without free tables are omitted")
	got := res.AvailableRestaurants[0]
	assert.Equal(t, "r-1", got.RestaurantID)
	assert.Equal(t, "Hà Nội", got.RestaurantName)
	assert.Equal(t, []AvailableTable{{TableID: "t-2", TableNumber: 2, Capacity: 6, Type: model.TableTypeVIP}}, got.Tables)
}

func TestAvailabilityService_Search_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid region", func(t *testing.T) {
		_, svc := newAvailabilityDeps()
		_, err := svc.Search(ctx, AvailabilityQuery{Region: "east"})
		assert.ErrorIs(t, err, ErrInvalidRegion)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		d, svc := newAvailabilityDeps()
		d.restaurants.On("FindByID", ctx, "r-x").Return(nil, sql.ErrNoRows)
		_, err := svc.Search(ctx, AvailabilityQuery{Region: model.RegionSouth, RestaurantID: "r-x"})
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
	})

	t.Run("restaurant outside region", func(t *testing.T) {
		d, svc := newAvailabilityDeps()
		d.restaurants.On("FindByID", ctx, "r-1").Return(&model.Restaurant{ID: "r-1", Region: model.RegionNorth}, nil)
		_, err := svc.Search(ctx, AvailabilityQuery{Region: model.RegionSouth, RestaurantID: "r-1"})
		assert.ErrorIs(t, err, ErrRestaurantNotInRegion)
	})

	t.Run("region without restaurants", func(t *testing.T) {
		d, svc := newAvailabilityDeps()
		d.restaurants.On("List", ctx, model.RegionCentral).Return([]model.Restaurant{}, nil)
		res, err := svc.Search(ctx, AvailabilityQuery{Region: model.RegionCentral})
		require.NoError(t, err)
		assert.Empty(t, res.AvailableRestaurants)
		d.tables.AssertNotCalled(t, "ListBookable", mock.Anything, mock.Anything)
	})
}

func TestAvailabilityService_Check(t *testing.T) {
	ctx := context.Background()
	d, svc := newAvailabilityDeps()
	d.tables.On("ListBookable", ctx, repository.TableFilter{MinCapacity: 4}).Return([]model.Table{{ID: "t-1"}, {ID: "t-2"}}, nil)
	d.bookings.On("OccupiedTableIDs", ctx, "2026-10-20", "12:00").Return([]string{"t-2"}, nil)
	d.blocks.On("BlockedTableIDs", ctx, "2026-10-20", "12:00").Return([]string{}, nil)

	tables, err := svc.Check(ctx, "2026-10-20", "12:00", 4)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "t-1", tables[0].ID)

	_, err = svc.Check(ctx, "2026-10-20", "12:00", 0)
	assert.ErrorIs(t, err, ErrPartySize)
}
