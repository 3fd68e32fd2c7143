package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations run in order inside one transaction. The reservations table
// carries a range-exclusion constraint so the no-overlap invariant holds at
// the storage boundary even if an application-level check is bypassed: two
// rows on the same accommodation with blocking statuses can never hold
// overlapping half-open date ranges.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	`CREATE TABLE IF NOT EXISTS properties (
		id                  BIGSERIAL PRIMARY KEY,
		name                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		address             TEXT NOT NULL,
		city                TEXT NOT NULL,
		state               TEXT NOT NULL,
		zip_code            TEXT NOT NULL DEFAULT '',
		phone               TEXT NOT NULL DEFAULT '',
		email               TEXT NOT NULL DEFAULT '',
		website             TEXT NOT NULL DEFAULT '',
		check_in_time       TEXT NOT NULL DEFAULT '14:00',
		check_out_time      TEXT NOT NULL DEFAULT '12:00',
		cancellation_policy TEXT NOT NULL DEFAULT '',
		house_rules         TEXT NOT NULL DEFAULT '',
		is_active           BOOLEAN NOT NULL DEFAULT TRUE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS accommodations (
		id                  BIGSERIAL PRIMARY KEY,
		property_id         BIGINT NOT NULL REFERENCES properties(id),
		name                TEXT NOT NULL,
		type                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		max_guests          INT NOT NULL DEFAULT 2,
		bedrooms            INT NOT NULL DEFAULT 1,
		bathrooms           INT NOT NULL DEFAULT 1,
		beds                INT NOT NULL DEFAULT 1,
		base_price_cents    BIGINT NOT NULL,
		weekend_price_cents BIGINT,
		holiday_price_cents BIGINT,
		cleaning_fee_cents  BIGINT NOT NULL DEFAULT 0,
		min_stay_nights     INT NOT NULL DEFAULT 1,
		max_stay_nights     INT,
		is_available        BOOLEAN NOT NULL DEFAULT TRUE,
		is_active           BOOLEAN NOT NULL DEFAULT TRUE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS guests (
		id                BIGSERIAL PRIMARY KEY,
		first_name        TEXT NOT NULL,
		last_name         TEXT NOT NULL,
		email             TEXT NOT NULL UNIQUE,
		phone             TEXT NOT NULL DEFAULT '',
		document_type     TEXT NOT NULL DEFAULT '',
		document_number   TEXT NOT NULL DEFAULT '',
		city              TEXT NOT NULL DEFAULT '',
		country           TEXT NOT NULL DEFAULT '',
		is_active         BOOLEAN NOT NULL DEFAULT TRUE,
		total_bookings    INT NOT NULL DEFAULT 0,
		total_spent_cents BIGINT NOT NULL DEFAULT 0,
		last_stay_date    DATE,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id                  BIGSERIAL PRIMARY KEY,
		code                TEXT NOT NULL UNIQUE,
		property_id         BIGINT NOT NULL REFERENCES properties(id),
		accommodation_id    BIGINT NOT NULL REFERENCES accommodations(id),
		guest_id            BIGINT NOT NULL REFERENCES guests(id),
		check_in_date       DATE NOT NULL,
		check_out_date      DATE NOT NULL,
		nights              INT NOT NULL,
		adults              INT NOT NULL DEFAULT 1,
		children            INT NOT NULL DEFAULT 0,
		total_guests        INT NOT NULL,
		base_amount_cents   BIGINT NOT NULL,
		cleaning_fee_cents  BIGINT NOT NULL DEFAULT 0,
		service_fee_cents   BIGINT NOT NULL DEFAULT 0,
		taxes_cents         BIGINT NOT NULL DEFAULT 0,
		discount_cents      BIGINT NOT NULL DEFAULT 0,
		total_cents         BIGINT NOT NULL,
		status              TEXT NOT NULL DEFAULT 'pending',
		payment_status      TEXT NOT NULL DEFAULT 'pending',
		payment_method      TEXT NOT NULL DEFAULT '',
		payment_date        TIMESTAMPTZ,
		actual_check_in     TIMESTAMPTZ,
		actual_check_out    TIMESTAMPTZ,
		special_requests    TEXT NOT NULL DEFAULT '',
		internal_notes      TEXT NOT NULL DEFAULT '',
		cancellation_reason TEXT NOT NULL DEFAULT '',
		cancelled_at        TIMESTAMPTZ,
		source              TEXT NOT NULL DEFAULT 'direct',
		guest_rating        INT,
		guest_review        TEXT NOT NULL DEFAULT '',
		host_rating         INT,
		host_review         TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT reservations_dates_ordered CHECK (check_out_date > check_in_date),
		CONSTRAINT reservations_guests_add_up CHECK (adults + children = total_guests),
		CONSTRAINT reservations_no_overlap EXCLUDE USING gist (
			accommodation_id WITH =,
			daterange(check_in_date, check_out_date) WITH &&
		) WHERE (status IN ('confirmed', 'checked_in'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reservations_accommodation
		ON reservations (accommodation_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_guest
		ON reservations (guest_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_dates
		ON reservations (check_in_date, check_out_date)`,
}

// Migrate applies the schema. Statements are idempotent so it is safe to
// run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, stmt := range migrations {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
