package db

import "context"

// Migrate creates the schema if it does not exist. Statements are ordered
// by foreign key dependency.
func Migrate(ctx context.Context, pg *Postgres) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			phone         TEXT NOT NULL DEFAULT '',
			role          TEXT NOT NULL DEFAULT 'customer',
			cart_id       BIGINT,
			password_hash TEXT,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id           BIGSERIAL PRIMARY KEY,
			name         TEXT NOT NULL UNIQUE,
			description  TEXT NOT NULL DEFAULT '',
			price        BIGINT NOT NULL,
			category     TEXT NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS tables (
			id           BIGSERIAL PRIMARY KEY,
			table_number INT NOT NULL UNIQUE,
			capacity     INT NOT NULL,
			location     TEXT NOT NULL DEFAULT 'Indoor',
			status       TEXT NOT NULL DEFAULT 'Available',
			features     TEXT[] NOT NULL DEFAULT '{}',
			created_by   BIGINT NOT NULL REFERENCES users(id),
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			id          BIGSERIAL PRIMARY KEY,
			customer_id BIGINT REFERENCES users(id),
			total_price BIGINT NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS carts_customer_id_key
			ON carts (customer_id) WHERE customer_id IS NOT NULL`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			cart_id      BIGINT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
			menu_item_id BIGINT NOT NULL,
			quantity     INT NOT NULL,
			position     INT NOT NULL,
			PRIMARY KEY (cart_id, menu_item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id             BIGSERIAL PRIMARY KEY,
			customer_id    BIGINT NOT NULL REFERENCES users(id),
			customer_name  TEXT NOT NULL DEFAULT '',
			order_type     TEXT NOT NULL DEFAULT 'Dine-In',
			status         TEXT NOT NULL DEFAULT 'Pending',
			payment_status TEXT NOT NULL DEFAULT 'Unpaid',
			total_price    BIGINT NOT NULL,
			customer_notes TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id           BIGSERIAL PRIMARY KEY,
			order_id     BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id BIGINT,
			name         TEXT NOT NULL,
			quantity     INT NOT NULL,
			unit_price   BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id               BIGSERIAL PRIMARY KEY,
			user_id          BIGINT NOT NULL REFERENCES users(id),
			table_id         BIGINT NOT NULL REFERENCES tables(id),
			party_size       INT NOT NULL,
			reservation_date DATE NOT NULL,
			start_time       TEXT NOT NULL,
			end_time         TEXT NOT NULL,
			duration_hours   DOUBLE PRECISION NOT NULL,
			status           TEXT NOT NULL DEFAULT 'Pending',
			customer_name    TEXT NOT NULL DEFAULT '',
			customer_email   TEXT NOT NULL DEFAULT '',
			customer_phone   TEXT NOT NULL DEFAULT '',
			special_requests TEXT NOT NULL DEFAULT '',
			occasion         TEXT NOT NULL DEFAULT '',
			created_by       BIGINT NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS reservations_date_idx
			ON reservations (reservation_date)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id             BIGSERIAL PRIMARY KEY,
			action         TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			severity       TEXT NOT NULL DEFAULT 'info',
			type           TEXT NOT NULL DEFAULT '',
			user_id        BIGINT NOT NULL,
			affected_id    BIGINT,
			affected_model TEXT NOT NULL DEFAULT '',
			performed_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id         BIGSERIAL PRIMARY KEY,
			user_id    BIGINT NOT NULL REFERENCES users(id),
			title      TEXT NOT NULL,
			message    TEXT NOT NULL DEFAULT '',
			type       TEXT NOT NULL DEFAULT 'info',
			reference  TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			read_at    TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id         BIGSERIAL PRIMARY KEY,
			user_id    BIGINT NOT NULL REFERENCES users(id),
			rating     INT NOT NULL,
			comment    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pg.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
