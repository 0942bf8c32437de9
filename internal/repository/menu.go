package repository

import (
	"context"

	"restoapi/internal/model"
)

type MenuFilter struct {
	Category      string
	Query         string
	OnlyAvailable bool
}

type MenuRepository interface {
	Create(ctx context.Context, m *model.MenuItem) (*model.MenuItem, error)
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)
	// List orders by name.
	List(ctx context.Context, f MenuFilter, pq PageQuery) (*PageResult[model.MenuItem], error)
	// ListAvailable returns every available item ordered by category then name.
	ListAvailable(ctx context.Context) ([]model.MenuItem, error)
	Update(ctx context.Context, m *model.MenuItem) (*model.MenuItem, error)
	Delete(ctx context.Context, id string) error
}
