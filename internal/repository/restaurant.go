package repository

import (
	"context"

	"restoapi/internal/model"
)

type RestaurantRepository interface {
	Create(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error)
	FindByID(ctx context.Context, id string) (*model.Restaurant, error)
	// List returns restaurants sorted by name. An empty region lists all of them.
	List(ctx context.Context, region model.Region) ([]model.Restaurant, error)
	Update(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error)
	// Delete returns sql.ErrNoRows when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
