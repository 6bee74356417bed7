package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Payable store (SQLite).
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
    amount      INTEGER NOT NULL DEFAULT 0,
    issuer      TEXT NOT NULL DEFAULT '',
    paid        INTEGER NOT NULL DEFAULT 0,
    payer       TEXT NOT NULL DEFAULT '',
    paid_at     TEXT,
    description TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
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
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
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
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
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
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    event_id   TEXT NOT NULL DEFAULT '',
    type       TEXT NOT NULL DEFAULT '',
    id_hash    TEXT NOT NULL DEFAULT '',
    invoice_id TEXT NOT NULL DEFAULT '',
    old_id     TEXT NOT NULL DEFAULT '',
    new_id     TEXT NOT NULL DEFAULT '',
    amount     INTEGER NOT NULL DEFAULT 0,
    actor      TEXT NOT NULL DEFAULT '',
    at         TEXT NOT NULL DEFAULT (datetime('now'))
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
