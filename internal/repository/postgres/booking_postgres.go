package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

// BookingPostgres is a PostgreSQL implementation of repository.BookingRepository.
type BookingPostgres struct {
	db *sql.DB
}

func NewBookingPostgres(db *sql.DB) *BookingPostgres {
	return &BookingPostgres{db: db}
}

var _ repository.BookingRepository = (*BookingPostgres)(nil)

const bookingColumns = `id, restaurant_id, table_id, date, time, adults, children, note,
	customer_name, customer_phone, customer_email, status, created_by, updated_by, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	if err := row.Scan(
		&b.ID,
		&b.RestaurantID,
		&b.TableID,
		&b.Date,
		&b.Time,
		&b.Adults,
		&b.Children,
		&b.Note,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.CustomerEmail,
		&b.Status,
		&b.CreatedBy,
		&b.UpdatedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	items := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func bookingStatuses(ss []model.BookingStatus) any {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return pq.Array(out)
}

func (r *BookingPostgres) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	const q = `
		INSERT INTO bookings (restaurant_id, table_id, date, time, adults, children, note,
			customer_name, customer_phone, customer_email, status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING ` + bookingColumns
	out, err := scanBooking(conn(ctx, r.db).QueryRowContext(ctx, q,
		b.RestaurantID,
		b.TableID,
		b.Date,
		b.Time,
		b.Adults,
		b.Children,
		b.Note,
		b.CustomerName,
		b.CustomerPhone,
		b.CustomerEmail,
		b.Status,
		b.CreatedBy,
	))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *BookingPostgres) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

const bookingFilter = `
	WHERE ($1 = '' OR restaurant_id::text = $1)
	  AND ($2 = '' OR date = $2)
	  AND ($3 = '' OR status = $3)
	  AND ($4 = '' OR created_by::text = $4)
`

func (r *BookingPostgres) List(ctx context.Context, f repository.BookingFilter, page repository.PageQuery) (*repository.PageResult[model.Booking], error) {
	db := conn(ctx, r.db)
	args := []any{f.RestaurantID, f.Date, string(f.Status), f.CreatedBy}

	const qCount = `SELECT COUNT(*) FROM bookings` + bookingFilter
	var total int
	if err := db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + bookingColumns + `
		FROM bookings` + bookingFilter + `
		ORDER BY date DESC, time DESC, created_at DESC
		LIMIT $5 OFFSET $6
	`
	rows, err := db.QueryContext(ctx, qList, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, err
	}
	items, err := collectBookings(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Booking]{Items: items, Total: total}, nil
}

func (r *BookingPostgres) SlotTaken(ctx context.Context, tableID, date, time, excludeID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE table_id = $1 AND date = $2 AND time = $3
			  AND status = ANY($4)
			  AND ($5 = '' OR id::text <> $5)
		)
	`
	var taken bool
	err := conn(ctx, r.db).QueryRowContext(ctx, q,
		tableID, date, time, bookingStatuses(model.OccupyingBookingStatuses), excludeID,
	).Scan(&taken)
	return taken, err
}

func (r *BookingPostgres) OccupiedTableIDs(ctx context.Context, date, time string) ([]string, error) {
	const q = `
		SELECT DISTINCT table_id FROM bookings
		WHERE table_id IS NOT NULL AND date = $1 AND time = $2 AND status = ANY($3)
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, date, time, bookingStatuses(model.OccupyingBookingStatuses))
	if err != nil {
		return nil, err
	}
	return scanStrings(rows)
}

func (r *BookingPostgres) PendingForSlot(ctx context.Context, tableID, date, time, excludeID string) ([]model.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE table_id = $1 AND date = $2 AND time = $3 AND status = 'pending' AND id::text <> $4
		ORDER BY created_at
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, tableID, date, time, excludeID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *BookingPostgres) ConfirmedOnOrBefore(ctx context.Context, date string) ([]model.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed' AND date <= $1
		ORDER BY date, time
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *BookingPostgres) CountActiveForTable(ctx context.Context, tableID string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE table_id = $1 AND status IN ('pending', 'confirmed', 'seated')`
	var n int
	err := conn(ctx, r.db).QueryRowContext(ctx, q, tableID).Scan(&n)
	return n, err
}

func (r *BookingPostgres) CountCreatedBetween(ctx context.Context, restaurantID string, from, to time.Time, statuses []model.BookingStatus) (int, error) {
	const q = `
		SELECT COUNT(*) FROM bookings
		WHERE restaurant_id = $1 AND created_at >= $2 AND created_at < $3 AND status = ANY($4)
	`
	var n int
	err := conn(ctx, r.db).QueryRowContext(ctx, q, restaurantID, from, to, bookingStatuses(statuses)).Scan(&n)
	return n, err
}

func (r *BookingPostgres) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus, updatedBy *string) (*model.Booking, error) {
	const q = `
		UPDATE bookings
		SET status = $3, updated_by = COALESCE($4, updated_by), updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING ` + bookingColumns
	b, err := scanBooking(conn(ctx, r.db).QueryRowContext(ctx, q, id, from, to, updatedBy))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrConflict
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func (r *BookingPostgres) AssignTable(ctx context.Context, id, tableID string, updatedBy *string) (*model.Booking, error) {
	const q = `
		UPDATE bookings
		SET table_id = $2, updated_by = COALESCE($3, updated_by), updated_at = now()
		WHERE id = $1
		RETURNING ` + bookingColumns
	b, err := scanBooking(conn(ctx, r.db).QueryRowContext(ctx, q, id, tableID, updatedBy))
	if err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func (r *BookingPostgres) AddHistory(ctx context.Context, h *model.BookingStatusChange) error {
	const q = `
		INSERT INTO booking_status_history (booking_id, from_status, to_status, changed_by, actor, note)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := conn(ctx, r.db).ExecContext(ctx, q, h.BookingID, h.FromStatus, h.ToStatus, h.ChangedBy, h.Actor, h.Note)
	return err
}

func (r *BookingPostgres) ListHistory(ctx context.Context, bookingID string) ([]model.BookingStatusChange, error) {
	const q = `
		SELECT id, booking_id, from_status, to_status, changed_by, actor, note, created_at
		FROM booking_status_history
		WHERE booking_id = $1
		ORDER BY created_at, id
	`
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.BookingStatusChange, 0)
	for rows.Next() {
		var h model.BookingStatusChange
		if err := rows.Scan(&h.ID, &h.BookingID, &h.FromStatus, &h.ToStatus, &h.ChangedBy, &h.Actor, &h.Note, &h.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}
