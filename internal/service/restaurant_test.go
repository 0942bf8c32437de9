package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restoapi/internal/model"
	repoMocks "restoapi/internal/repository/mocks"
)

func TestRestaurantService(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockRestaurantRepository)
	svc := NewRestaurantService(repo)

	repo.On("List", ctx, model.RegionSouth).Return([]model.Restaurant{{ID: "r-3"}}, nil)
	list, err := svc.List(ctx, model.RegionSouth)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(ctx, "west")
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = svc.Create(ctx, staff, RestaurantInput{Name: "X", Region: "west"})
	assert.ErrorIs(t, err, ErrInvalidRegion)

	repo.On("FindByID", ctx, "r-1").Return(&model.Restaurant{ID: "r-1", Name: "Old", Region: model.RegionNorth, Address: "1 Tràng Tiền"}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(r *model.Restaurant) bool {
		return r.Name == "New" && r.Address == "1 Tràng Tiền" && *r.UpdatedBy == "staff-1"
	})).Return(&model.Restaurant{ID: "r-1", Name: "New"}, nil)
	name := " New "
	r, err := svc.Update(ctx, staff, "r-1", RestaurantPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", r.Name)

	repo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)

	repo.On("Delete", ctx, "missing").Return(sql.ErrNoRows)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrRestaurantNotFound)
	repo.AssertExpectations(t)
}
