package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

// CartPostgres is a PostgreSQL implementation of repository.CartRepository.
// Items are stored as a JSONB array.
type CartPostgres struct {
	db *sql.DB
}

func NewCartPostgres(db *sql.DB) *CartPostgres {
	return &CartPostgres{db: db}
}

var _ repository.CartRepository = (*CartPostgres)(nil)

const cartColumns = `id, user_id, items, created_at, updated_at`

func scanCart(row interface{ Scan(...any) error }) (*model.Cart, error) {
	var c model.Cart
	var raw []byte
	if err := row.Scan(&c.ID, &c.UserID, &raw, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON(raw, &c.Items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	if c.Items == nil {
		c.Items = []model.CartItem{}
	}
	return &c, nil
}

func (r *CartPostgres) GetOrCreate(ctx context.Context, userID string) (*model.Cart, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	const q = `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + cartColumns
	return scanCart(conn(ctx, r.db).QueryRowContext(ctx, q, userID))
}

func (r *CartPostgres) SaveItems(ctx context.Context, cartID string, items []model.CartItem) (*model.Cart, error) {
	raw, err := encodeJSON(items)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE carts SET items = $2::jsonb, updated_at = now()
		WHERE id = $1
		RETURNING ` + cartColumns
	return scanCart(conn(ctx, r.db).QueryRowContext(ctx, q, cartID, raw))
}

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
type OrderPostgres struct {
	db *sql.DB
}

func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

const orderSelect = `
	SELECT o.id, o.user_id, o.restaurant_id, COALESCE(r.name, ''), o.items, o.subtotal, o.discount,
		o.tax, o.total, o.status, o.customer_name, o.table_number, o.created_at, o.updated_at
	FROM orders o
	LEFT JOIN restaurants r ON r.id = o.restaurant_id
`

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	var raw []byte
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.RestaurantID,
		&o.RestaurantName,
		&raw,
		&o.Subtotal,
		&o.Discount,
		&o.Tax,
		&o.Total,
		&o.Status,
		&o.CustomerName,
		&o.TableNumber,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := decodeJSON(raw, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	return &o, nil
}

func collectOrders(rows *sql.Rows) ([]model.Order, error) {
	defer rows.Close()
	items := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	return items, rows.Err()
}

func (r *OrderPostgres) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	raw, err := encodeJSON(o.Items)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO orders (user_id, restaurant_id, items, subtotal, discount, tax, total, status, customer_name, table_number)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id string
	if err := conn(ctx, r.db).QueryRowContext(ctx, q,
		o.UserID,
		o.RestaurantID,
		raw,
		o.Subtotal,
		o.Discount,
		o.Tax,
		o.Total,
		o.Status,
		o.CustomerName,
		o.TableNumber,
	).Scan(&id); err != nil {
		return nil, mapErr(err)
	}
	return r.FindByID(ctx, id)
}

func (r *OrderPostgres) FindByID(ctx context.Context, id string) (*model.Order, error) {
	const q = orderSelect + ` WHERE o.id = $1`
	return scanOrder(conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *OrderPostgres) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const q = orderSelect + ` WHERE o.user_id = $1 ORDER BY o.created_at DESC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

const orderFilter = `
	WHERE ($1 = '' OR o.status = $1)
	  AND ($2 = '' OR o.customer_name ILIKE '%' || $2 || '%' OR o.table_number ILIKE '%' || $2 || '%')
`

func (r *OrderPostgres) List(ctx context.Context, f repository.OrderFilter, page repository.PageQuery) (*repository.PageResult[model.Order], error) {
	db := conn(ctx, r.db)
	args := []any{string(f.Status), f.Query}

	const qCount = `SELECT COUNT(*) FROM orders o` + orderFilter
	var total int
	if err := db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	const qList = orderSelect + orderFilter + `
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := db.QueryContext(ctx, qList, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, err
	}
	items, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Order]{Items: items, Total: total}, nil
}

func (r *OrderPostgres) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	const q = `UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`
	err := execOne(ctx, conn(ctx, r.db), q, id, from, to)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *OrderPostgres) Revenue(ctx context.Context, restaurantID string, from, to time.Time) (float64, int, error) {
	const q = `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE restaurant_id = $1 AND status = 'completed' AND created_at >= $2 AND created_at < $3
	`
	var total float64
	var count int
	err := conn(ctx, r.db).QueryRowContext(ctx, q, restaurantID, from, to).Scan(&total, &count)
	return total, count, err
}

func (r *OrderPostgres) TopMenuItems(ctx context.Context, from, to *time.Time, limit int) ([]model.TopMenuItem, error) {
	const q = `
		SELECT item->>'menuItemId', MAX(item->>'name'),
			SUM((item->>'quantity')::int), SUM((item->>'price')::numeric * (item->>'quantity')::int)
		FROM orders o, jsonb_array_elements(o.items) AS item
		WHERE o.status <> 'pending'
		  AND ($1::timestamptz IS NULL OR o.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR o.created_at < $2)
		GROUP BY item->>'menuItemId'
		ORDER BY 3 DESC, 2
		LIMIT $3
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TopMenuItem, 0)
	for rows.Next() {
		var it model.TopMenuItem
		if err := rows.Scan(&it.MenuItemID, &it.Name, &it.Quantity, &it.Revenue); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// InvoicePostgres is a PostgreSQL implementation of repository.InvoiceRepository.
type InvoicePostgres struct {
	db *sql.DB
}

func NewInvoicePostgres(db *sql.DB) *InvoicePostgres {
	return &InvoicePostgres{db: db}
}

var _ repository.InvoiceRepository = (*InvoicePostgres)(nil)

const invoiceColumns = `id, order_id, invoice_number, items, subtotal, discount, tax, total, status,
	email_to, issued_at, sent_at, created_by, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (*model.Invoice, error) {
	var inv model.Invoice
	var raw []byte
	if err := row.Scan(
		&inv.ID,
		&inv.OrderID,
		&inv.InvoiceNumber,
		&raw,
		&inv.Subtotal,
		&inv.Discount,
		&inv.Tax,
		&inv.Total,
		&inv.Status,
		&inv.EmailTo,
		&inv.IssuedAt,
		&inv.SentAt,
		&inv.CreatedBy,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := decodeJSON(raw, &inv.Items); err != nil {
		return nil, fmt.Errorf("decode invoice items: %w", err)
	}
	if inv.Items == nil {
		inv.Items = []model.InvoiceItem{}
	}
	return &inv, nil
}

func (r *InvoicePostgres) Create(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	raw, err := encodeJSON(inv.Items)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO invoices (order_id, invoice_number, items, subtotal, discount, tax, total, status, issued_at, created_by)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + invoiceColumns
	out, err := scanInvoice(conn(ctx, r.db).QueryRowContext(ctx, q,
		inv.OrderID,
		inv.InvoiceNumber,
		raw,
		inv.Subtotal,
		inv.Discount,
		inv.Tax,
		inv.Total,
		inv.Status,
		inv.IssuedAt,
		inv.CreatedBy,
	))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *InvoicePostgres) FindByID(ctx context.Context, id string) (*model.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return scanInvoice(conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *InvoicePostgres) FindByOrderID(ctx context.Context, orderID string) (*model.Invoice, error) {
	const q = `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1`
	return scanInvoice(conn(ctx, r.db).QueryRowContext(ctx, q, orderID))
}

func (r *InvoicePostgres) List(ctx context.Context, query string, page repository.PageQuery) (*repository.PageResult[model.Invoice], error) {
	db := conn(ctx, r.db)

	const qCount = `SELECT COUNT(*) FROM invoices WHERE ($1 = '' OR invoice_number ILIKE '%' || $1 || '%')`
	var total int
	if err := db.QueryRowContext(ctx, qCount, query).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR invoice_number ILIKE '%' || $1 || '%')
		ORDER BY issued_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.QueryContext(ctx, qList, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Invoice]{Items: items, Total: total}, nil
}

func (r *InvoicePostgres) MarkSent(ctx context.Context, id, to string, sentAt time.Time) (*model.Invoice, error) {
	const q = `
		UPDATE invoices
		SET status = 'sent', email_to = $2, sent_at = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + invoiceColumns
	return scanInvoice(conn(ctx, r.db).QueryRowContext(ctx, q, id, to, sentAt))
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b), nil
}

func decodeJSON(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
