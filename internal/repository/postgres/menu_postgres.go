package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

// MenuPostgres is a PostgreSQL implementation of repository.MenuRepository.
type MenuPostgres struct {
	db *sql.DB
}

func NewMenuPostgres(db *sql.DB) *MenuPostgres {
	return &MenuPostgres{db: db}
}

var _ repository.MenuRepository = (*MenuPostgres)(nil)

const menuColumns = `id, name, description, price, category, image_urls, is_available, created_by, updated_by, created_at, updated_at`

func scanMenuItem(row interface{ Scan(...any) error }) (*model.MenuItem, error) {
	var m model.MenuItem
	var images pq.StringArray
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Price,
		&m.Category,
		&images,
		&m.IsAvailable,
		&m.CreatedBy,
		&m.UpdatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	m.ImageURLs = nonNil(images)
	return &m, nil
}

func collectMenuItems(rows *sql.Rows) ([]model.MenuItem, error) {
	defer rows.Close()
	items := make([]model.MenuItem, 0)
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *MenuPostgres) Create(ctx context.Context, m *model.MenuItem) (*model.MenuItem, error) {
	const q = `
		INSERT INTO menu_items (name, description, price, category, image_urls, is_available, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + menuColumns
	out, err := scanMenuItem(conn(ctx, r.db).QueryRowContext(ctx, q,
		m.Name,
		m.Description,
		m.Price,
		m.Category,
		pq.Array(nonNil(m.ImageURLs)),
		m.IsAvailable,
		m.CreatedBy,
	))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *MenuPostgres) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	const q = `SELECT ` + menuColumns + ` FROM menu_items WHERE id = $1`
	return scanMenuItem(conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

const menuFilter = `
	WHERE ($1 = '' OR category = $1)
	  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
	  AND (NOT $3 OR is_available)
`

func (r *MenuPostgres) List(ctx context.Context, f repository.MenuFilter, page repository.PageQuery) (*repository.PageResult[model.MenuItem], error) {
	db := conn(ctx, r.db)
	args := []any{f.Category, f.Query, f.OnlyAvailable}

	const qCount = `SELECT COUNT(*) FROM menu_items` + menuFilter
	var total int
	if err := db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + menuColumns + `
		FROM menu_items` + menuFilter + `
		ORDER BY name, id
		LIMIT $4 OFFSET $5
	`
	rows, err := db.QueryContext(ctx, qList, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, err
	}
	items, err := collectMenuItems(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.MenuItem]{Items: items, Total: total}, nil
}

func (r *MenuPostgres) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	const q = `
		SELECT ` + menuColumns + `
		FROM menu_items
		WHERE is_available
		ORDER BY category, name, id
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectMenuItems(rows)
}

func (r *MenuPostgres) Update(ctx context.Context, m *model.MenuItem) (*model.MenuItem, error) {
	const q = `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, category = $5, image_urls = $6,
			is_available = $7, updated_by = $8, updated_at = now()
		WHERE id = $1
		RETURNING ` + menuColumns
	return scanMenuItem(conn(ctx, r.db).QueryRowContext(ctx, q,
		m.ID,
		m.Name,
		m.Description,
		m.Price,
		m.Category,
		pq.Array(nonNil(m.ImageURLs)),
		m.IsAvailable,
		m.UpdatedBy,
	))
}

func (r *MenuPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM menu_items WHERE id = $1`
	return execOne(ctx, conn(ctx, r.db), q, id)
}
