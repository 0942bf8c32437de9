package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restoapi/internal/logger"
	"restoapi/internal/model"
	"restoapi/internal/repository"
	repoMocks "restoapi/internal/repository/mocks"
	"restoapi/internal/statemachine"
)

type orderDeps struct {
	tx          *repoMocks.MockTransactor
	orders      *repoMocks.MockOrderRepository
	carts       *repoMocks.MockCartRepository
	restaurants *repoMocks.MockRestaurantRepository
}

func newOrderDeps() (*orderDeps, OrderService) {
	d := &orderDeps{
		tx:          new(repoMocks.MockTransactor),
		orders:      new(repoMocks.MockOrderRepository),
		carts:       new(repoMocks.MockCartRepository),
		restaurants: new(repoMocks.MockRestaurantRepository),
	}
	d.tx.On("WithinTx", mock.Anything).Return(nil)
	return d, NewOrderService(d.tx, d.orders, d.carts, d.restaurants, logger.Discard())
}

func TestOrderService_CreateFromCart(t *testing.T) {
	ctx := context.Background()
	cart := &model.Cart{ID: "c-1", UserID: "user-1", Items: []model.CartItem{
		{MenuItemID: "m-1", Name: "Phở bò", Price: 65000, Quantity: 2},
		{MenuItemID: "m-2", Name: "Trà đá", Price: 5000, Quantity: 3, Notes: "ít đá"},
	}}

	t.Run("totals and cart cleared", func(t *testing.T) {
		d, svc := newOrderDeps()
		d.carts.On("GetOrCreate", ctx, "user-1").Return(cart, nil)
		d.restaurants.On("FindByID", ctx, "r-1").Return(&model.Restaurant{ID: "r-1"}, nil)
		d.orders.On("Create", ctx, mock.MatchedBy(func(o *model.Order) bool {
			return o.Subtotal == 145000 &&
				o.Discount == 20000 &&
				o.Tax == 0 &&
				o.Total == 125000 &&
				o.Status == model.OrderPending &&
				len(o.Items) == 2 &&
				o.Items[0].Total == 130000 &&
				o.Items[1].Notes == "ít đá" &&
				*o.RestaurantID == "r-1" &&
				o.TableNumber == "5"
		})).Return(&model.Order{ID: "o-1", UserID: "user-1", Total: 125000}, nil)
		d.carts.On("SaveItems", ctx, "c-1", []model.CartItem{}).Return(&model.Cart{ID: "c-1"}, nil)

		o, err := svc.CreateFromCart(ctx, customer, CheckoutInput{Discount: 20000, RestaurantID: "r-1", TableNumber: " 5 "})
		require.NoError(t, err)
		assert.Equal(t, "o-1", o.ID)
		d.orders.AssertExpectations(t)
		d.carts.AssertExpectations(t)
	})

	t.Run("discount larger than subtotal", func(t *testing.T) {
		d, svc := newOrderDeps()
		d.carts.On("GetOrCreate", ctx, "user-1").Return(cart, nil)
		d.orders.On("Create", ctx, mock.MatchedBy(func(o *model.Order) bool {
			return o.Total == 0 && o.RestaurantID == nil
		})).Return(&model.Order{ID: "o-2"}, nil)
		d.carts.On("SaveItems", ctx, "c-1", mock.Anything).Return(&model.Cart{ID: "c-1"}, nil)

		_, err := svc.CreateFromCart(ctx, customer, CheckoutInput{Discount: 1_000_000})
		require.NoError(t, err)
		d.orders.AssertExpectations(t)
	})

	t.Run("empty cart", func(t *testing.T) {
		d, svc := newOrderDeps()
		d.carts.On("GetOrCreate", ctx, "user-1").Return(&model.Cart{ID: "c-1"}, nil)

		_, err := svc.CreateFromCart(ctx, customer, CheckoutInput{})
		assert.ErrorIs(t, err, ErrCartEmpty)
		d.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestOrderService_GetOwned(t *testing.T) {
	ctx := context.Background()
	d, svc := newOrderDeps()
	d.orders.On("FindByID", ctx, "o-1").Return(&model.Order{ID: "o-1", UserID: "user-1"}, nil)
	d.orders.On("FindByID", ctx, "o-x").Return(nil, sql.ErrNoRows)

	o, err := svc.GetOwned(ctx, customer, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "o-1", o.ID)

	_, err = svc.GetOwned(ctx, &Caller{UserID: "user-2"}, "o-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.GetOwned(ctx, customer, "o-x")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to preparing", func(t *testing.T) {
		d, svc := newOrderDeps()
		d.orders.On("FindByID", ctx, "o-1").Return(&model.Order{ID: "o-1", Status: model.OrderPending}, nil)
		d.orders.On("UpdateStatus", ctx, "o-1", model.OrderPending, model.OrderPreparing).Return(&model.Order{ID: "o-1", Status: model.OrderPreparing}, nil)

		o, err := svc.UpdateStatus(ctx, "o-1", model.OrderPreparing)
		require.NoError(t, err)
		assert.Equal(t, model.OrderPreparing, o.Status)
	})

	t.Run("backwards move", func(t *testing.T) {
		d, svc := newOrderDeps()
		d.orders.On("FindByID", ctx, "o-1").Return(&model.Order{ID: "o-1", Status: model.OrderServed}, nil)

		_, err := svc.UpdateStatus(ctx, "o-1", model.OrderPending)
		var te *statemachine.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, []string{"completed"}, te.ValidNext)
	})

	t.Run("lost race", func(t *testing.T) {
		d, svc := newOrderDeps()
		d.orders.On("FindByID", ctx, "o-1").Return(&model.Order{ID: "o-1", Status: model.OrderPending}, nil)
		d.orders.On("UpdateStatus", ctx, "o-1", model.OrderPending, model.OrderCompleted).Return(nil, repository.ErrConflict)

		_, err := svc.UpdateStatus(ctx, "o-1", model.OrderCompleted)
		assert.ErrorIs(t, err, ErrStatusChanged)
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	d, svc := newOrderDeps()
	d.orders.On("List", ctx, repository.OrderFilter{Status: model.OrderServed, Query: "An"}, repository.PageQuery{Limit: 10, Offset: 20}).
		Return(&repository.PageResult[model.Order]{Items: []model.Order{{ID: "o-1"}}, Total: 21}, nil)

	res, err := svc.List(ctx, OrderListQuery{Status: model.OrderServed, Query: " An ", Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 3, Limit: 10, Total: 21}, res.Pagination)
	assert.Len(t, res.Items, 1)
}
