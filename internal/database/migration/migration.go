package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the first table step; its presence means the schema exists.
const sentinelTable = "public.restaurants"

var steps = []migrationStep{
	{
		Name: "create_extension_pgcrypto",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	},
	{
		Name: "create_table_restaurants",
		SQL: `CREATE TABLE IF NOT EXISTS restaurants (
  id         UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  name       TEXT        NOT NULL,
  region     TEXT        NOT NULL CHECK (region IN ('north','central','south')),
  address    TEXT        NOT NULL,
  images     TEXT[]      NOT NULL DEFAULT '{}',
  created_by UUID,
  updated_by UUID,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_restaurants_region",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_restaurants_region ON restaurants (region);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id                    UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  username              TEXT        NOT NULL,
  email                 TEXT        NOT NULL UNIQUE,
  password_hash         TEXT        NOT NULL,
  role                  TEXT        NOT NULL DEFAULT 'customer' CHECK (role IN ('customer','staff','admin')),
  reset_token_hash      TEXT,
  reset_token_expire_at TIMESTAMPTZ,
  created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_dining_tables",
		SQL: `CREATE TABLE IF NOT EXISTS dining_tables (
  id            UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  restaurant_id UUID        NOT NULL REFERENCES restaurants (id) ON DELETE CASCADE,
  table_number  INTEGER     NOT NULL CHECK (table_number >= 1),
  capacity      INTEGER     NOT NULL CHECK (capacity >= 1),
  type          TEXT        NOT NULL DEFAULT 'normal' CHECK (type IN ('vip','normal')),
  status        TEXT        NOT NULL DEFAULT 'available' CHECK (status IN ('available','reserved','occupied','maintenance')),
  created_by    UUID,
  updated_by    UUID,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (restaurant_id, table_number)
);`,
	},
	{
		Name: "create_table_bookings",
		SQL: `CREATE TABLE IF NOT EXISTS bookings (
  id             UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  restaurant_id  UUID        NOT NULL REFERENCES restaurants (id) ON DELETE CASCADE,
  table_id       UUID        REFERENCES dining_tables (id) ON DELETE SET NULL,
  date           TEXT        NOT NULL CHECK (date ~ '^\d{4}-\d{2}-\d{2}$'),
  time           TEXT        NOT NULL CHECK (time ~ '^\d{2}:\d{2}$'),
  adults         INTEGER     NOT NULL DEFAULT 1 CHECK (adults >= 0),
  children       INTEGER     NOT NULL DEFAULT 0 CHECK (children >= 0),
  note           TEXT        NOT NULL DEFAULT '',
  customer_name  TEXT        NOT NULL,
  customer_phone TEXT        NOT NULL,
  customer_email TEXT        NOT NULL,
  status         TEXT        NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','confirmed','seated','completed','cancelled','no_show')),
  created_by     UUID,
  updated_by     UUID,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_bookings_restaurant_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_bookings_restaurant_date ON bookings (restaurant_id, date, time);`,
	},
	{
		Name: "create_index_bookings_created_by",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_bookings_created_by ON bookings (created_by);`,
	},
	{
		Name: "create_index_bookings_slot_held",
		SQL: `CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_slot_held ON bookings (table_id, date, time)
  WHERE table_id IS NOT NULL AND status IN ('confirmed','seated','completed');`,
	},
	{
		Name: "create_table_booking_status_history",
		SQL: `CREATE TABLE IF NOT EXISTS booking_status_history (
  id          UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  booking_id  UUID        NOT NULL REFERENCES bookings (id) ON DELETE CASCADE,
  from_status TEXT        NOT NULL DEFAULT '',
  to_status   TEXT        NOT NULL,
  changed_by  UUID,
  actor       TEXT        NOT NULL,
  note        TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_booking_status_history_booking",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_booking_status_history_booking ON booking_status_history (booking_id, created_at);`,
	},
	{
		Name: "create_table_table_blocks",
		SQL: `CREATE TABLE IF NOT EXISTS table_blocks (
  id            UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  restaurant_id UUID        NOT NULL REFERENCES restaurants (id) ON DELETE CASCADE,
  table_id      UUID        NOT NULL REFERENCES dining_tables (id) ON DELETE CASCADE,
  date          TEXT        NOT NULL,
  time          TEXT        NOT NULL,
  reason        TEXT        NOT NULL DEFAULT '',
  created_by    UUID,
  updated_by    UUID,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (restaurant_id, table_id, date, time)
);`,
	},
	{
		Name: "create_table_menu_items",
		SQL: `CREATE TABLE IF NOT EXISTS menu_items (
  id           UUID          PRIMARY KEY DEFAULT gen_random_uuid(),
  name         TEXT          NOT NULL,
  description  TEXT          NOT NULL DEFAULT '',
  price        NUMERIC(14,2) NOT NULL CHECK (price >= 0),
  category     TEXT          NOT NULL DEFAULT 'Uncategorized',
  image_urls   TEXT[]        NOT NULL DEFAULT '{}',
  is_available BOOLEAN       NOT NULL DEFAULT true,
  created_by   UUID,
  updated_by   UUID,
  created_at   TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_menu_items_category",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_menu_items_category ON menu_items (category, name);`,
	},
	{
		Name: "create_table_carts",
		SQL: `CREATE TABLE IF NOT EXISTS carts (
  id         UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  user_id    UUID        NOT NULL UNIQUE REFERENCES users (id) ON DELETE CASCADE,
  items      JSONB       NOT NULL DEFAULT '[]',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_orders",
		SQL: `CREATE TABLE IF NOT EXISTS orders (
  id              UUID          PRIMARY KEY DEFAULT gen_random_uuid(),
  user_id         UUID          NOT NULL REFERENCES users (id),
  restaurant_id   UUID          REFERENCES restaurants (id) ON DELETE SET NULL,
  items           JSONB         NOT NULL DEFAULT '[]',
  subtotal        NUMERIC(14,2) NOT NULL DEFAULT 0,
  discount        NUMERIC(14,2) NOT NULL DEFAULT 0,
  tax             NUMERIC(14,2) NOT NULL DEFAULT 0,
  total           NUMERIC(14,2) NOT NULL DEFAULT 0,
  status          TEXT          NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','preparing','served','completed')),
  customer_name   TEXT          NOT NULL DEFAULT '',
  table_number    TEXT          NOT NULL DEFAULT '',
  created_at      TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_orders_user",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id, created_at DESC);`,
	},
	{
		Name: "create_index_orders_restaurant_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_restaurant_status ON orders (restaurant_id, status, created_at);`,
	},
	{
		Name: "create_table_invoices",
		SQL: `CREATE TABLE IF NOT EXISTS invoices (
  id             UUID          PRIMARY KEY DEFAULT gen_random_uuid(),
  order_id       UUID          NOT NULL UNIQUE REFERENCES orders (id) ON DELETE CASCADE,
  invoice_number TEXT          NOT NULL UNIQUE,
  items          JSONB         NOT NULL DEFAULT '[]',
  subtotal       NUMERIC(14,2) NOT NULL DEFAULT 0,
  discount       NUMERIC(14,2) NOT NULL DEFAULT 0,
  tax            NUMERIC(14,2) NOT NULL DEFAULT 0,
  total          NUMERIC(14,2) NOT NULL DEFAULT 0,
  status         TEXT          NOT NULL DEFAULT 'issued' CHECK (status IN ('issued','sent','cancelled')),
  email_to       TEXT          NOT NULL DEFAULT '',
  issued_at      TIMESTAMPTZ   NOT NULL DEFAULT now(),
  sent_at        TIMESTAMPTZ,
  created_by     UUID,
  created_at     TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_feedback",
		SQL: `CREATE TABLE IF NOT EXISTS feedback (
  id            UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  booking_id    UUID        REFERENCES bookings (id) ON DELETE SET NULL,
  order_id      UUID        REFERENCES orders (id) ON DELETE SET NULL,
  restaurant_id UUID        REFERENCES restaurants (id) ON DELETE SET NULL,
  user_id       UUID        NOT NULL REFERENCES users (id),
  rating        INTEGER     NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment       TEXT        NOT NULL DEFAULT '',
  images        TEXT[]      NOT NULL DEFAULT '{}',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_feedback_order",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_feedback_order ON feedback (order_id) WHERE order_id IS NOT NULL;`,
	},
	{
		Name: "create_index_feedback_restaurant",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_feedback_restaurant ON feedback (restaurant_id);`,
	},
}

// EnsureMigrated checks if the schema exists and runs the migration steps if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('" + sentinelTable + "') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
