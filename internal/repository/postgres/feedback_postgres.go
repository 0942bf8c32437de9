package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

// FeedbackPostgres is a PostgreSQL implementation of repository.FeedbackRepository.
type FeedbackPostgres struct {
	db *sql.DB
}

func NewFeedbackPostgres(db *sql.DB) *FeedbackPostgres {
	return &FeedbackPostgres{db: db}
}

var _ repository.FeedbackRepository = (*FeedbackPostgres)(nil)

const feedbackColumns = `id, booking_id, order_id, restaurant_id, user_id, rating, comment, images, created_at, updated_at`

func scanFeedback(row interface{ Scan(...any) error }) (*model.Feedback, error) {
	var f model.Feedback
	var images pq.StringArray
	if err := row.Scan(
		&f.ID,
		&f.BookingID,
		&f.OrderID,
		&f.RestaurantID,
		&f.UserID,
		&f.Rating,
		&f.Comment,
		&images,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	f.Images = nonNil(images)
	return &f, nil
}

func (r *FeedbackPostgres) Create(ctx context.Context, f *model.Feedback) (*model.Feedback, error) {
	const q = `
		INSERT INTO feedback (booking_id, order_id, restaurant_id, user_id, rating, comment, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + feedbackColumns
	out, err := scanFeedback(conn(ctx, r.db).QueryRowContext(ctx, q,
		f.BookingID,
		f.OrderID,
		f.RestaurantID,
		f.UserID,
		f.Rating,
		f.Comment,
		pq.Array(nonNil(f.Images)),
	))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *FeedbackPostgres) FindByID(ctx context.Context, id string) (*model.Feedback, error) {
	const q = `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1`
	return scanFeedback(conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *FeedbackPostgres) List(ctx context.Context, f repository.FeedbackFilter) ([]model.Feedback, error) {
	const q = `
		SELECT ` + feedbackColumns + `
		FROM feedback
		WHERE ($1 = 0 OR rating = $1)
		  AND ($2 = '' OR comment ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR restaurant_id::text = $3)
		ORDER BY created_at DESC, id DESC
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, f.Rating, f.Search, f.RestaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Feedback, 0)
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *fb)
	}
	return items, rows.Err()
}

func (r *FeedbackPostgres) Update(ctx context.Context, f *model.Feedback) (*model.Feedback, error) {
	const q = `
		UPDATE feedback SET rating = $2, comment = $3, images = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + feedbackColumns
	return scanFeedback(conn(ctx, r.db).QueryRowContext(ctx, q, f.ID, f.Rating, f.Comment, pq.Array(nonNil(f.Images))))
}

func (r *FeedbackPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM feedback WHERE id = $1`
	return execOne(ctx, conn(ctx, r.db), q, id)
}

func (r *FeedbackPostgres) RatingCounts(ctx context.Context) (map[int]int, error) {
	const q = `SELECT rating, COUNT(*) FROM feedback GROUP BY rating`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var rating, n int
		if err := rows.Scan(&rating, &n); err != nil {
			return nil, err
		}
		out[rating] = n
	}
	return out, rows.Err()
}

func (r *FeedbackPostgres) TopRestaurants(ctx context.Context, limit int) ([]model.RestaurantRating, error) {
	const q = `
		SELECT f.restaurant_id, r.name, AVG(f.rating)::float8, COUNT(*)
		FROM feedback f
		JOIN restaurants r ON r.id = f.restaurant_id
		GROUP BY f.restaurant_id, r.name
		ORDER BY 3 DESC, 4 DESC
		LIMIT $1
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.RestaurantRating, 0)
	for rows.Next() {
		var rr model.RestaurantRating
		if err := rows.Scan(&rr.RestaurantID, &rr.RestaurantName, &rr.AverageRating, &rr.Count); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
