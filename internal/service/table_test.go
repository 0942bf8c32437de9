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

func TestTableService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(tables *repoMocks.MockTableRepository, restaurants *repoMocks.MockRestaurantRepository)
		wantErr error
	}{
		{
			name: "happy path defaults to normal",
			setup: func(tables *repoMocks.MockTableRepository, restaurants *repoMocks.MockRestaurantRepository) {
				restaurants.On("FindByID", ctx, "r-1").Return(&model.Restaurant{ID: "r-1"}, nil)
				tables.On("Create", ctx, mock.MatchedBy(func(tb *model.Table) bool {
					return tb.Type == model.TableTypeNormal && tb.Status == model.TableAvailable && tb.TableNumber == 7
				})).Return(&model.Table{ID: "t-1"}, nil)
			},
		},
		{
			name: "unknown restaurant",
			setup: func(tables *repoMocks.MockTableRepository, restaurants *repoMocks.MockRestaurantRepository) {
				restaurants.On("FindByID", ctx, "r-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrRestaurantNotFound,
		},
		{
			name: "duplicate number",
			setup: func(tables *repoMocks.MockTableRepository, restaurants *repoMocks.MockRestaurantRepository) {
				restaurants.On("FindByID", ctx, "r-1").Return(&model.Restaurant{ID: "r-1"}, nil)
				tables.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrTableNumberTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := new(repoMocks.MockTableRepository)
			restaurants := new(repoMocks.MockRestaurantRepository)
			tt.setup(tables, restaurants)

			tb, err := NewTableService(tables, restaurants, nil).Create(ctx, staff, TableInput{RestaurantID: "r-1", TableNumber: 7, Capacity: 4})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "t-1", tb.ID)
			}
			tables.AssertExpectations(t)
			restaurants.AssertExpectations(t)
		})
	}
}

func TestTableService_SetStatus(t *testing.T) {
	ctx := context.Background()
	tables := new(repoMocks.MockTableRepository)
	tables.On("UpdateStatus", ctx, "t-1", model.TableMaintenance, strPtr("staff-1")).Return(&model.Table{ID: "t-1", Status: model.TableMaintenance}, nil)
	svc := NewTableService(tables, nil, nil)

	tb, err := svc.SetStatus(ctx, staff, "t-1", model.TableMaintenance)
	require.NoError(t, err)
	assert.Equal(t, model.TableMaintenance, tb.Status)

	for _, s := range []model.TableStatus{model.TableReserved, model.TableOccupied, "broken"} {
		_, err := svc.SetStatus(ctx, staff, "t-1", s)
		assert.ErrorIs(t, err, ErrManualTableStatus, s)
	}
	tables.AssertExpectations(t)
}

func TestTableService_Delete(t *testing.T) {
	ctx := context.Background()
	tables := new(repoMocks.MockTableRepository)
	bookings := new(repoMocks.MockBookingRepository)
	bookings.On("CountActiveForTable", ctx, "busy").Return(2, nil)
	bookings.On("CountActiveForTable", ctx, "free").Return(0, nil)
	bookings.On("CountActiveForTable", ctx, "gone").Return(0, nil)
	tables.On("Delete", ctx, "free").Return(nil)
	tables.On("Delete", ctx, "gone").Return(sql.ErrNoRows)
	svc := NewTableService(tables, nil, bookings)

	assert.ErrorIs(t, svc.Delete(ctx, "busy"), ErrTableHasBookings)
	assert.NoError(t, svc.Delete(ctx, "free"))
	assert.ErrorIs(t, svc.Delete(ctx, "gone"), ErrTableNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrIDRequired)
	tables.AssertExpectations(t)
}

func TestTableBlockService(t *testing.T) {
	ctx := context.Background()
	blocks := new(repoMocks.MockTableBlockRepository)
	tables := new(repoMocks.MockTableRepository)
	tables.On("FindByID", ctx, "t-1").Return(&model.Table{ID: "t-1", RestaurantID: "r-1"}, nil)
	svc := NewTableBlockService(blocks, tables)

	in := TableBlockInput{RestaurantID: "r-1", TableID: "t-1", Date: "2026-10-20", Time: "19:00", Reason: " private event "}
	blocks.On("Create", ctx, mock.MatchedBy(func(b *model.TableBlock) bool {
		return b.Reason == "private event" && *b.CreatedBy == "staff-1"
	})).Return(&model.TableBlock{ID: "blk-1"}, nil).Once()
	b, err := svc.Create(ctx, staff, in)
	require.NoError(t, err)
	assert.Equal(t, "blk-1", b.ID)

	blocks.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate).Once()
	_, err = svc.Create(ctx, staff, in)
	assert.ErrorIs(t, err, ErrBlockExists)

	in.RestaurantID = "r-2"
	_, err = svc.Create(ctx, staff, in)
	assert.ErrorIs(t, err, ErrTableNotInRestaurant)

	blocks.On("Delete", ctx, "missing").Return(sql.ErrNoRows)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrBlockNotFound)
	blocks.AssertExpectations(t)
}
