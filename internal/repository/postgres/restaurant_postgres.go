package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

// RestaurantPostgres is a PostgreSQL implementation of repository.RestaurantRepository.
type RestaurantPostgres struct {
	db *sql.DB
}

func NewRestaurantPostgres(db *sql.DB) *RestaurantPostgres {
	return &RestaurantPostgres{db: db}
}

var _ repository.RestaurantRepository = (*RestaurantPostgres)(nil)

const restaurantColumns = `id, name, region, address, images, created_by, updated_by, created_at, updated_at`

func scanRestaurant(row interface{ Scan(...any) error }) (*model.Restaurant, error) {
	var rs model.Restaurant
	var images pq.StringArray
	if err := row.Scan(
		&rs.ID,
		&rs.Name,
		&rs.Region,
		&rs.Address,
		&images,
		&rs.CreatedBy,
		&rs.UpdatedBy,
		&rs.CreatedAt,
		&rs.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rs.Images = nonNil(images)
	return &rs, nil
}

func (r *RestaurantPostgres) Create(ctx context.Context, rs *model.Restaurant) (*model.Restaurant, error) {
	const q = `
		INSERT INTO restaurants (name, region, address, images, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + restaurantColumns
	row := conn(ctx, r.db).QueryRowContext(ctx, q,
		rs.Name,
		rs.Region,
		rs.Address,
		pq.Array(nonNil(rs.Images)),
		rs.CreatedBy,
	)
	out, err := scanRestaurant(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *RestaurantPostgres) FindByID(ctx context.Context, id string) (*model.Restaurant, error) {
	const q = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	return scanRestaurant(conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *RestaurantPostgres) List(ctx context.Context, region model.Region) ([]model.Restaurant, error) {
	const q = `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE ($1 = '' OR region = $1)
		ORDER BY name, id
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, string(region))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Restaurant, 0)
	for rows.Next() {
		rs, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rs)
	}
	return items, rows.Err()
}

func (r *RestaurantPostgres) Update(ctx context.Context, rs *model.Restaurant) (*model.Restaurant, error) {
	const q = `
		UPDATE restaurants
		SET name = $2, region = $3, address = $4, images = $5, updated_by = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + restaurantColumns
	return scanRestaurant(conn(ctx, r.db).QueryRowContext(ctx, q,
		rs.ID,
		rs.Name,
		rs.Region,
		rs.Address,
		pq.Array(nonNil(rs.Images)),
		rs.UpdatedBy,
	))
}

func (r *RestaurantPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM restaurants WHERE id = $1`
	return execOne(ctx, conn(ctx, r.db), q, id)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
