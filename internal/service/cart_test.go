package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoapi/internal/model"
	repoMocks "restoapi/internal/repository/mocks"
)

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	pho := &model.MenuItem{ID: "m-1", Name: "Phở bò", Price: 65000, IsAvailable: true}

	tests := []struct {
		name      string
		existing  []model.CartItem
		menuItem  *model.MenuItem
		menuErr   error
		wantItems []model.CartItem
		wantErr   error
	}{
		{
			name:      "new item",
			menuItem:  pho,
			wantItems: []model.CartItem{{MenuItemID: "m-1", Name: "Phở bò", Price: 65000, Quantity: 2, Notes: "không hành"}},
		},
		{
			name:      "merges quantity",
			existing:  []model.CartItem{{MenuItemID: "m-1", Name: "Phở bò", Price: 65000, Quantity: 1}},
			menuItem:  pho,
			wantItems: []model.CartItem{{MenuItemID: "m-1", Name: "Phở bò", Price: 65000, Quantity: 3, Notes: "không hành"}},
		},
		{
			name:      "merge refreshes name and price",
			existing:  []model.CartItem{{MenuItemID: "m-1", Name: "Pho", Price: 50000, Quantity: 1}},
			menuItem:  pho,
			wantItems: []model.CartItem{{MenuItemID: "m-1", Name: "Phở bò", Price: 65000, Quantity: 3, Notes: "không hành"}},
		},
		{
			name:     "unavailable item",
			menuItem: &model.MenuItem{ID: "m-1", IsAvailable: false},
			wantErr:  ErrMenuItemNotFound,
		},
		{
			name:    "unknown item",
			menuErr: sql.ErrNoRows,
			wantErr: ErrMenuItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := new(repoMocks.MockCartRepository)
			menu := new(repoMocks.MockMenuRepository)
			if tt.menuErr != nil {
				menu.On("FindByID", ctx, "m-1").Return(nil, tt.menuErr)
			} else {
				menu.On("FindByID", ctx, "m-1").Return(tt.menuItem, nil)
			}
			if tt.wantErr == nil {
				carts.On("GetOrCreate", ctx, "user-1").Return(&model.Cart{ID: "c-1", Items: tt.existing}, nil)
				carts.On("SaveItems", ctx, "c-1", tt.wantItems).Return(&model.Cart{ID: "c-1", Items: tt.wantItems}, nil)
			}

			cart, err := NewCartService(carts, menu).AddItem(ctx, "user-1", AddCartItemInput{MenuItemID: "m-1", Quantity: 2, Notes: " không hành "})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantItems, cart.Items)
			}
			carts.AssertExpectations(t)
			menu.AssertExpectations(t)
		})
	}
}

func TestCartService_UpdateRemoveClear(t *testing.T) {
	ctx := context.Background()
	carts := new(repoMocks.MockCartRepository)
	items := []model.CartItem{{MenuItemID: "m-1", Quantity: 1}, {MenuItemID: "m-2", Quantity: 2}}
	carts.On("GetOrCreate", ctx, "user-1").Return(&model.Cart{ID: "c-1", Items: items}, nil)
	svc := NewCartService(carts, nil)

	carts.On("SaveItems", ctx, "c-1", []model.CartItem{{MenuItemID: "m-1", Quantity: 5}, {MenuItemID: "m-2", Quantity: 2}}).Return(&model.Cart{ID: "c-1"}, nil).Once()
	_, err := svc.UpdateItem(ctx, "user-1", "m-1", 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity, "stored cart is not mutated")

	carts.On("SaveItems", ctx, "c-1", []model.CartItem{{MenuItemID: "m-2", Quantity: 2}}).Return(&model.Cart{ID: "c-1"}, nil).Once()
	_, err = svc.RemoveItem(ctx, "user-1", "m-1")
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, "user-1", "m-9")
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	_, err = svc.UpdateItem(ctx, "user-1", "m-9", 1, nil)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	carts.On("SaveItems", ctx, "c-1", []model.CartItem{}).Return(&model.Cart{ID: "c-1", Items: []model.CartItem{}}, nil).Once()
	cart, err := svc.Clear(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	carts.AssertExpectations(t)
	carts.AssertNumberOfCalls(t, "SaveItems", 3)
}
