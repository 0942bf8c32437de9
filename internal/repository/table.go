package repository

import (
	"context"

	"restoapi/internal/model"
)

// TableFilter narrows bookable table lookups. Empty RestaurantIDs means every restaurant.
type TableFilter struct {
	RestaurantIDs []string
	MinCapacity   int
}

type TableRepository interface {
	// Create inserts a table; ErrDuplicate when the number is taken in the restaurant.
	Create(ctx context.Context, t *model.Table) (*model.Table, error)
	FindByID(ctx context.Context, id string) (*model.Table, error)
	// ListByRestaurant orders by table number. An empty restaurantID lists all tables.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]model.Table, error)
	// ListBookable returns tables that are not in maintenance and fit the filter.
	ListBookable(ctx context.Context, f TableFilter) ([]model.Table, error)
	Update(ctx context.Context, t *model.Table) (*model.Table, error)
	UpdateStatus(ctx context.Context, id string, status model.TableStatus, updatedBy *string) (*model.Table, error)
	// CascadeStatus writes a status driven by a booking transition.
	// Tables in maintenance are left untouched.
	CascadeStatus(ctx context.Context, id string, status model.TableStatus) error
	Delete(ctx context.Context, id string) error
}

type TableBlockRepository interface {
	// Create inserts a block; ErrDuplicate when the slot is already blocked.
	Create(ctx context.Context, b *model.TableBlock) (*model.TableBlock, error)
	// List filters by restaurant and date when they are not empty.
	List(ctx context.Context, restaurantID, date string) ([]model.TableBlock, error)
	Exists(ctx context.Context, tableID, date, time string) (bool, error)
	// BlockedTableIDs returns the tables blocked at the given slot.
	BlockedTableIDs(ctx context.Context, date, time string) ([]string, error)
	Delete(ctx context.Context, id string) error
}
