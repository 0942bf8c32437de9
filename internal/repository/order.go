package repository

import (
	"context"
	"time"

	"restoapi/internal/model"
)

type CartRepository interface {
	// GetOrCreate returns the user's cart, creating an empty one on first use.
	GetOrCreate(ctx context.Context, userID string) (*model.Cart, error)
	SaveItems(ctx context.Context, cartID string, items []model.CartItem) (*model.Cart, error)
}

type OrderFilter struct {
	Status model.OrderStatus
	// Query matches the customer name or table number.
	Query string
}

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	FindByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	List(ctx context.Context, f OrderFilter, pq PageQuery) (*PageResult[model.Order], error)
	// UpdateStatus moves an order from -> to; ErrConflict when it is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error)
	// Revenue sums totals of completed orders of a restaurant created in [from, to).
	Revenue(ctx context.Context, restaurantID string, from, to time.Time) (total float64, count int, err error)
	// TopMenuItems ranks items by quantity over non-pending orders. Nil bounds are open.
	TopMenuItems(ctx context.Context, from, to *time.Time, limit int) ([]model.TopMenuItem, error)
}

type InvoiceRepository interface {
	// Create inserts an invoice; ErrDuplicate when the order already has one.
	Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error)
	FindByID(ctx context.Context, id string) (*model.Invoice, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.Invoice, error)
	// List searches invoice numbers when query is set. Newest first.
	List(ctx context.Context, query string, pq PageQuery) (*PageResult[model.Invoice], error)
	MarkSent(ctx context.Context, id, to string, sentAt time.Time) (*model.Invoice, error)
}
