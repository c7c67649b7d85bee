package storage

import (
	"context"
	"fmt"
)

// schemaStatements create the portal tables. Run in order; each statement is
// idempotent so startup can always apply them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id                   varchar PRIMARY KEY DEFAULT gen_random_uuid(),
		email                text NOT NULL UNIQUE,
		pcn_number           text NOT NULL,
		vehicle_registration text NOT NULL,
		billing_customer_ref text,
		subscription_ref     text,
		schedule_ref         text,
		created_at           timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS penalties (
		id                 varchar PRIMARY KEY DEFAULT gen_random_uuid(),
		ticket_no          text NOT NULL UNIQUE,
		vrm                text NOT NULL,
		vehicle_make       text,
		penalty_amount     numeric(10,2) NOT NULL,
		contravention_date text,
		site               text,
		reason_for_issue   text,
		badge_id           text,
		status             text NOT NULL DEFAULT 'active',
		created_at         timestamptz NOT NULL DEFAULT now(),
		updated_at         timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS payment_schedules (
		id                 varchar PRIMARY KEY DEFAULT gen_random_uuid(),
		customer_id        varchar NOT NULL REFERENCES customers(id),
		penalty_id         varchar NOT NULL REFERENCES penalties(id),
		total_amount       numeric(10,2) NOT NULL,
		monthly_amount     numeric(10,2) NOT NULL,
		total_payments     integer NOT NULL DEFAULT 3,
		payments_completed integer NOT NULL DEFAULT 0,
		status             text NOT NULL DEFAULT 'active',
		subscription_ref   text,
		schedule_ref       text,
		next_payment_date  timestamptz,
		created_at         timestamptz NOT NULL DEFAULT now(),
		updated_at         timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             varchar PRIMARY KEY DEFAULT gen_random_uuid(),
		schedule_id    varchar NOT NULL REFERENCES payment_schedules(id),
		customer_id    varchar NOT NULL REFERENCES customers(id),
		amount         numeric(10,2) NOT NULL,
		payment_number integer NOT NULL,
		status         text NOT NULL DEFAULT 'pending',
		intent_ref     text,
		session_ref    text,
		paid_at        timestamptz,
		due_date       timestamptz NOT NULL,
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_penalties_vrm ON penalties (vrm)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_schedule ON payments (schedule_id)`,
}

// EnsureSchema applies the table definitions.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
