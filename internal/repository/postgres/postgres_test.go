package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var restaurantCols = []string{"id", "name", "region", "address", "images", "created_by", "updated_by", "created_at", "updated_at"}

func TestRestaurantPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRestaurantPostgres(db)
	now := time.Now().UTC()
	staff := "u-1"

	mock.ExpectQuery("INSERT INTO restaurants").
		WithArgs("Pho 24", model.RegionNorth, "1 Hang Bai", sqlmock.AnyArg(), &staff).
		WillReturnRows(sqlmock.NewRows(restaurantCols).
			AddRow("r-1", "Pho 24", "north", "1 Hang Bai", "{a.jpg,b.jpg}", staff, staff, now, now))

	out, err := repo.Create(context.Background(), &model.Restaurant{
		Name: "Pho 24", Region: model.RegionNorth, Address: "1 Hang Bai",
		Images: []string{"a.jpg", "b.jpg"}, CreatedBy: &staff,
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", out.ID)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, out.Images)
	require.NotNil(t, out.CreatedBy)
	assert.Equal(t, staff, *out.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRestaurantPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM restaurants WHERE id = ?").
			WithArgs("r-1").
			WillReturnRows(sqlmock.NewRows(restaurantCols).
				AddRow("r-1", "Bun Cha", "north", "addr", "{}", nil, nil, time.Now(), time.Now()))

		rs, err := repo.FindByID(ctx, "r-1")
		require.NoError(t, err)
		assert.Equal(t, "Bun Cha", rs.Name)
		assert.Empty(t, rs.Images)
		assert.NotNil(t, rs.Images)
		assert.Nil(t, rs.CreatedBy)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM restaurants WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		rs, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rs)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantPostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRestaurantPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM restaurants").
		WithArgs("south").
		WillReturnRows(sqlmock.NewRows(restaurantCols).
			AddRow("r-1", "A", "south", "x", "{}", nil, nil, time.Now(), time.Now()).
			AddRow("r-2", "B", "south", "y", "{}", nil, nil, time.Now(), time.Now()))

	items, err := repo.List(context.Background(), model.RegionSouth)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantPostgres_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRestaurantPostgres(db)

	mock.ExpectExec("DELETE FROM restaurants").WithArgs("r-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM restaurants").WithArgs("r-2").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "r-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "r-2"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTablePostgres_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTablePostgres(db)

	mock.ExpectQuery("INSERT INTO dining_tables").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "dining_tables_restaurant_id_table_number_key"})

	_, err := repo.Create(context.Background(), &model.Table{
		RestaurantID: "r-1", TableNumber: 1, Capacity: 4, Type: model.TableTypeNormal, Status: model.TableAvailable,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var tableCols = []string{"id", "restaurant_id", "table_number", "capacity", "type", "status", "created_by", "updated_by", "created_at", "updated_at"}

func TestTablePostgres_ListBookableSkipsMaintenance(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTablePostgres(db)
	now := time.Now()

	mock.ExpectQuery(`FROM dining_tables\s+WHERE status <> 'maintenance'\s+AND capacity >= \$1`).
		WithArgs(4, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(tableCols).
			AddRow("t-1", "r-1", 1, 4, "normal", "available", nil, nil, now, now).
			AddRow("t-2", "r-1", 2, 6, "vip", "reserved", nil, nil, now, now))

	tables, err := repo.ListBookable(context.Background(), repository.TableFilter{RestaurantIDs: []string{"r-1"}, MinCapacity: 4})
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, model.TableAvailable, tables[0].Status)
	assert.Equal(t, 6, tables[1].Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableBlockPostgres_BlockedTableIDs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTableBlockPostgres(db)

	mock.ExpectQuery("SELECT DISTINCT table_id FROM table_blocks").
		WithArgs("2025-01-10", "19:00").
		WillReturnRows(sqlmock.NewRows([]string{"table_id"}).AddRow("t-1").AddRow("t-2"))

	ids, err := repo.BlockedTableIDs(context.Background(), "2025-01-10", "19:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"t-1", "t-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var bookingCols = []string{"id", "restaurant_id", "table_id", "date", "time", "adults", "children", "note",
	"customer_name", "customer_phone", "customer_email", "status", "created_by", "updated_by", "created_at", "updated_at"}

func bookingRow(id string, status model.BookingStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingCols).
		AddRow(id, "r-1", "t-1", "2025-01-10", "19:00", 2, 1, "", "An", "0900", "an@example.com", string(status), nil, nil, now, now)
}

func TestBookingPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingPostgres(db)
	tableID := "t-1"
	b := &model.Booking{
		RestaurantID: "r-1", TableID: &tableID, Date: "2025-01-10", Time: "19:00",
		Adults: 2, Children: 1, CustomerName: "An", CustomerPhone: "0900",
		CustomerEmail: "an@example.com", Status: model.BookingPending,
	}

	t.Run("ok", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO bookings").WillReturnRows(bookingRow("b-1", model.BookingPending))

		out, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
		assert.Equal(t, "b-1", out.ID)
		require.NotNil(t, out.TableID)
		assert.Equal(t, "t-1", *out.TableID)
		assert.Equal(t, 3, out.PartySize())
	})

	t.Run("slot held", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_bookings_slot_held"})

		_, err := repo.Create(context.Background(), b)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingPostgres_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("UPDATE bookings").
		WithArgs("b-1", model.BookingPending, model.BookingConfirmed, sqlmock.AnyArg()).
		WillReturnRows(bookingRow("b-1", model.BookingConfirmed))
	mock.ExpectQuery("UPDATE bookings").
		WithArgs("b-2", model.BookingPending, model.BookingConfirmed, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	b, err := repo.UpdateStatus(ctx, "b-1", model.BookingPending, model.BookingConfirmed, nil)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, b.Status)

	_, err = repo.UpdateStatus(ctx, "b-2", model.BookingPending, model.BookingConfirmed, nil)
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingPostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs("r-1", "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs("r-1", "", "", "", 10, 10).
		WillReturnRows(bookingRow("b-1", model.BookingPending))

	res, err := repo.List(context.Background(), repository.BookingFilter{RestaurantID: "r-1"}, repository.PageQuery{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 11, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingPostgres_SlotTaken(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingPostgres(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("t-1", "2025-01-10", "19:00", sqlmock.AnyArg(), "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.SlotTaken(context.Background(), "t-1", "2025-01-10", "19:00", "")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartPostgres_GetOrCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartPostgres(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO carts").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "items", "created_at", "updated_at"}).
			AddRow("c-1", "u-1", []byte(`[{"menuItemId":"m-1","name":"Pho","price":50000,"quantity":2}]`), now, now))

	c, err := repo.GetOrCreate(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 100000.0, c.Subtotal())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartPostgres_SaveItems(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCartPostgres(db)
	now := time.Now()

	mock.ExpectQuery("UPDATE carts SET items").
		WithArgs("c-1", `[]`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "items", "created_at", "updated_at"}).
			AddRow("c-1", "u-1", []byte(`[]`), now, now))

	c, err := repo.SaveItems(context.Background(), "c-1", []model.CartItem{})
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_UpdateStatusConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderPostgres(db)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("o-1", model.OrderPending, model.OrderPreparing).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateStatus(context.Background(), "o-1", model.OrderPending, model.OrderPreparing)
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPostgres_Revenue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderPostgres(db)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\), COUNT\\(\\*\\)").
		WithArgs("r-1", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow(250000.5, 3))

	total, count, err := repo.Revenue(context.Background(), "r-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 250000.5, total)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoicePostgres_FindByOrderID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInvoicePostgres(db)
	now := time.Now()

	cols := []string{"id", "order_id", "invoice_number", "items", "subtotal", "discount", "tax", "total", "status",
		"email_to", "issued_at", "sent_at", "created_by", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT (.+) FROM invoices WHERE order_id = ?").
		WithArgs("o-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("i-1", "o-1", "INV-20250110-ABC123", []byte(`[{"name":"Pho","price":50000,"quantity":1,"total":50000}]`),
				50000.0, 0.0, 0.0, 50000.0, "issued", "", now, nil, nil, now, now))

	inv, err := repo.FindByOrderID(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, "INV-20250110-ABC123", inv.InvoiceNumber)
	assert.Nil(t, inv.SentAt)
	require.Len(t, inv.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackPostgres_RatingCounts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFeedbackPostgres(db)

	mock.ExpectQuery("SELECT rating, COUNT\\(\\*\\) FROM feedback GROUP BY rating").
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).AddRow(5, 3).AddRow(4, 1))

	counts, err := repo.RatingCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int]int{5: 3, 4: 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	now := time.Now()

	cols := []string{"id", "username", "email", "password_hash", "role", "reset_token_hash", "reset_token_expire_at", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u-1", "a", "a@example.com", "hash", "staff", "", nil, now, now))

	u, err := repo.FindByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, u.Role)
	assert.Nil(t, u.ResetTokenExpireAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
