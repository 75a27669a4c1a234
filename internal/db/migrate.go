package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// parent_id carries no foreign key: deleting a node leaves its children
	// and linked documents pointing at the removed id.
	`CREATE TABLE IF NOT EXISTS archive_nodes (
		id          TEXT PRIMARY KEY,
		code        TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL CHECK(length(trim(description)) > 0),
		period      TEXT NOT NULL DEFAULT '',
		date_label  TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		parent_id   TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_archive_nodes_parent ON archive_nodes(parent_id)`,

	`CREATE TABLE IF NOT EXISTS parties (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL CHECK(kind IN ('supplier','client','staff')),
		name       TEXT NOT NULL,
		tax_code   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_parties_kind ON parties(kind)`,

	`CREATE TABLE IF NOT EXISTS general_documents (
		id          TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		type_code   TEXT NOT NULL DEFAULT '',
		issue_date  TEXT NOT NULL,
		expiry_date TEXT,
		owner_type  TEXT CHECK(owner_type IS NULL OR owner_type IN ('supplier','client','staff')),
		owner_id    TEXT,
		archive_id  TEXT,
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK((owner_type IS NULL) = (owner_id IS NULL))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_general_documents_archive ON general_documents(archive_id)`,
	`CREATE INDEX IF NOT EXISTS idx_general_documents_expiry ON general_documents(expiry_date)`,

	`CREATE TABLE IF NOT EXISTS document_attachments (
		id          TEXT PRIMARY KEY,
		document_id TEXT NOT NULL REFERENCES general_documents(id) ON DELETE CASCADE,
		path        TEXT NOT NULL,
		added_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_document_attachments_document ON document_attachments(document_id)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id          TEXT PRIMARY KEY,
		type_code   TEXT NOT NULL DEFAULT '',
		number      TEXT NOT NULL,
		issue_date  TEXT NOT NULL,
		due_date    TEXT,
		supplier_id TEXT REFERENCES parties(id),
		client_id   TEXT REFERENCES parties(id),
		archive_id  TEXT,
		pdf_path    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK((supplier_id IS NULL) <> (client_id IS NULL))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_invoices_archive ON invoices(archive_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_due ON invoices(due_date)`,

	`CREATE TABLE IF NOT EXISTS deadline_configs (
		key         TEXT PRIMARY KEY,
		days_before INTEGER NOT NULL CHECK(days_before >= 0),
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id         TEXT PRIMARY KEY,
		type       TEXT NOT NULL CHECK(type IN ('deadline','system','info')),
		title      TEXT NOT NULL,
		message    TEXT NOT NULL DEFAULT '',
		link       TEXT NOT NULL DEFAULT '',
		is_read    INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		created_on TEXT NOT NULL,
		dedup_key  TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at)`,

	// One generated alert per (document, status) per calendar day, even when
	// two scans race.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_notifications_dedup_day
		ON notifications(dedup_key, created_on) WHERE dedup_key IS NOT NULL`,

	// Invoice totals were added after the first release.
	`ALTER TABLE invoices ADD COLUMN total TEXT`,
}
