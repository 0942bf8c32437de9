package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

// TablePostgres is a PostgreSQL implementation of repository.TableRepository.
type TablePostgres struct {
	db *sql.DB
}

func NewTablePostgres(db *sql.DB) *TablePostgres {
	return &TablePostgres{db: db}
}

var _ repository.TableRepository = (*TablePostgres)(nil)

const tableColumns = `id, restaurant_id, table_number, capacity, type, status, created_by, updated_by, created_at, updated_at`

func scanTable(row interface{ Scan(...any) error }) (*model.Table, error) {
	var t model.Table
	if err := row.Scan(
		&t.ID,
		&t.RestaurantID,
		&t.TableNumber,
		&t.Capacity,
		&t.Type,
		&t.Status,
		&t.CreatedBy,
		&t.UpdatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTables(rows *sql.Rows) ([]model.Table, error) {
	defer rows.Close()
	items := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

func (r *TablePostgres) Create(ctx context.Context, t *model.Table) (*model.Table, error) {
	const q = `
		INSERT INTO dining_tables (restaurant_id, table_number, capacity, type, status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + tableColumns
	out, err := scanTable(conn(ctx, r.db).QueryRowContext(ctx, q,
		t.RestaurantID,
		t.TableNumber,
		t.Capacity,
		t.Type,
		t.Status,
		t.CreatedBy,
	))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *TablePostgres) FindByID(ctx context.Context, id string) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM dining_tables WHERE id = $1`
	return scanTable(conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *TablePostgres) ListByRestaurant(ctx context.Context, restaurantID string) ([]model.Table, error) {
	const q = `
		SELECT ` + tableColumns + `
		FROM dining_tables
		WHERE ($1 = '' OR restaurant_id::text = $1)
		ORDER BY restaurant_id, table_number
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	return collectTables(rows)
}

func (r *TablePostgres) ListBookable(ctx context.Context, f repository.TableFilter) ([]model.Table, error) {
	const q = `
		SELECT ` + tableColumns + `
		FROM dining_tables
		WHERE status <> 'maintenance'
		  AND capacity >= $1
		  AND (cardinality($2::uuid[]) = 0 OR restaurant_id = ANY($2::uuid[]))
		ORDER BY restaurant_id, table_number
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, f.MinCapacity, pq.Array(nonNil(f.RestaurantIDs)))
	if err != nil {
		return nil, err
	}
	return collectTables(rows)
}

func (r *TablePostgres) Update(ctx context.Context, t *model.Table) (*model.Table, error) {
	const q = `
		UPDATE dining_tables
		SET table_number = $2, capacity = $3, type = $4, updated_by = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + tableColumns
	out, err := scanTable(conn(ctx, r.db).QueryRowContext(ctx, q,
		t.ID,
		t.TableNumber,
		t.Capacity,
		t.Type,
		t.UpdatedBy,
	))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *TablePostgres) UpdateStatus(ctx context.Context, id string, status model.TableStatus, updatedBy *string) (*model.Table, error) {
	const q = `
		UPDATE dining_tables
		SET status = $2, updated_by = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + tableColumns
	return scanTable(conn(ctx, r.db).QueryRowContext(ctx, q, id, status, updatedBy))
}

func (r *TablePostgres) CascadeStatus(ctx context.Context, id string, status model.TableStatus) error {
	const q = `
		UPDATE dining_tables
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status <> 'maintenance'
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, q, id, status)
	return err
}

func (r *TablePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM dining_tables WHERE id = $1`
	return execOne(ctx, conn(ctx, r.db), q, id)
}

// TableBlockPostgres is a PostgreSQL implementation of repository.TableBlockRepository.
type TableBlockPostgres struct {
	db *sql.DB
}

func NewTableBlockPostgres(db *sql.DB) *TableBlockPostgres {
	return &TableBlockPostgres{db: db}
}

var _ repository.TableBlockRepository = (*TableBlockPostgres)(nil)

const blockColumns = `id, restaurant_id, table_id, date, time, reason, created_by, updated_by, created_at, updated_at`

func scanBlock(row interface{ Scan(...any) error }) (*model.TableBlock, error) {
	var b model.TableBlock
	if err := row.Scan(
		&b.ID,
		&b.RestaurantID,
		&b.TableID,
		&b.Date,
		&b.Time,
		&b.Reason,
		&b.CreatedBy,
		&b.UpdatedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *TableBlockPostgres) Create(ctx context.Context, b *model.TableBlock) (*model.TableBlock, error) {
	const q = `
		INSERT INTO table_blocks (restaurant_id, table_id, date, time, reason, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + blockColumns
	out, err := scanBlock(conn(ctx, r.db).QueryRowContext(ctx, q,
		b.RestaurantID,
		b.TableID,
		b.Date,
		b.Time,
		b.Reason,
		b.CreatedBy,
	))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *TableBlockPostgres) List(ctx context.Context, restaurantID, date string) ([]model.TableBlock, error) {
	const q = `
		SELECT ` + blockColumns + `
		FROM table_blocks
		WHERE ($1 = '' OR restaurant_id::text = $1)
		  AND ($2 = '' OR date = $2)
		ORDER BY date, time
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, restaurantID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TableBlock, 0)
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func (r *TableBlockPostgres) Exists(ctx context.Context, tableID, date, time string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM table_blocks WHERE table_id = $1 AND date = $2 AND time = $3)`
	var exists bool
	err := conn(ctx, r.db).QueryRowContext(ctx, q, tableID, date, time).Scan(&exists)
	return exists, err
}

func (r *TableBlockPostgres) BlockedTableIDs(ctx context.Context, date, time string) ([]string, error) {
	const q = `SELECT DISTINCT table_id FROM table_blocks WHERE date = $1 AND time = $2`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, date, time)
	if err != nil {
		return nil, err
	}
	return scanStrings(rows)
}

func (r *TableBlockPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM table_blocks WHERE id = $1`
	return execOne(ctx, conn(ctx, r.db), q, id)
}
