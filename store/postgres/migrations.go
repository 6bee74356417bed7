package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Payable store (PostgreSQL).
var Migrations = migrate.NewGroup("payable")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_payable_invoices",
			Version: "20250301000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS payable_invoices (
    id_hash     TEXT PRIMARY KEY,
    invoice_id  TEXT NOT NULL DEFAULT '',
    amount      BIGINT NOT NULL DEFAULT 0,
    issuer      TEXT NOT NULL DEFAULT '',
    paid        BOOLEAN NOT NULL DEFAULT FALSE,
    payer       TEXT NOT NULL DEFAULT '',
    paid_at     TIMESTAMPTZ,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_payable_invoices_issuer ON payable_invoices (issuer);
CREATE INDEX IF NOT EXISTS idx_payable_invoices_paid ON payable_invoices (issuer, paid);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS payable_invoices`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_payable_grants",
			Version: "20250301000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS payable_grants (
    creator    TEXT PRIMARY KEY,
    prefix     TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS payable_grants`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_payable_meta",
			Version: "20250301000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS payable_meta (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS payable_meta`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_payable_events",
			Version: "20250301000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS payable_events (
    seq        BIGSERIAL PRIMARY KEY,
    event_id   TEXT NOT NULL DEFAULT '',
    type       TEXT NOT NULL DEFAULT '',
    id_hash    TEXT NOT NULL DEFAULT '',
    invoice_id TEXT NOT NULL DEFAULT '',
    old_id     TEXT NOT NULL DEFAULT '',
    new_id     TEXT NOT NULL DEFAULT '',
    amount     BIGINT NOT NULL DEFAULT 0,
    actor      TEXT NOT NULL DEFAULT '',
    at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_payable_events_type ON payable_events (type);
CREATE INDEX IF NOT EXISTS idx_payable_events_invoice ON payable_events (invoice_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS payable_events`)
				return err
			},
		},
	)
}
