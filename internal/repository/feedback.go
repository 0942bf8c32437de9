package repository

import (
	"context"

	"restoapi/internal/model"
)

type FeedbackFilter struct {
	Rating       int
	Search       string
	RestaurantID string
}

type FeedbackRepository interface {
	// Create inserts feedback; ErrDuplicate when the order already has feedback.
	Create(ctx context.Context, f *model.Feedback) (*model.Feedback, error)
	FindByID(ctx context.Context, id string) (*model.Feedback, error)
	// List returns newest first.
	List(ctx context.Context, f FeedbackFilter) ([]model.Feedback, error)
	Update(ctx context.Context, f *model.Feedback) (*model.Feedback, error)
	Delete(ctx context.Context, id string) error
	// RatingCounts maps each rating present to its number of entries.
	RatingCounts(ctx context.Context) (map[int]int, error)
	// TopRestaurants ranks restaurants by average rating then count.
	TopRestaurants(ctx context.Context, limit int) ([]model.RestaurantRating, error)
}
