package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
)

const invoiceColumns = `id, type_code, number, issue_date, due_date, supplier_id, client_id,
	archive_id, pdf_path, total, created_at, updated_at`

// SQLiteInvoiceRepo implements InvoiceRepo using a SQLite database.
// The owner is stored in supplier_id or client_id depending on its type.
type SQLiteInvoiceRepo struct {
	db db.DBTX
}

func NewSQLiteInvoiceRepo(db db.DBTX) *SQLiteInvoiceRepo {
	return &SQLiteInvoiceRepo{db: db}
}

func (r *SQLiteInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	var supplierID, clientID any
	switch inv.Owner.Type {
	case domain.EntitySupplier:
		supplierID = inv.Owner.ID
	case domain.EntityClient:
		clientID = inv.Owner.ID
	default:
		return domain.Invalidf("invoice %s: owner must be a supplier or client, got %q", inv.ID, inv.Owner.Type)
	}
	var total any
	if inv.Total != nil {
		total = inv.Total.String()
	}

	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.TypeCode,
		inv.Number,
		inv.IssueDate.Format(dateLayout),
		nullableTimeToString(inv.DueDate, dateLayout),
		supplierID,
		clientID,
		nullableString(inv.ArchiveID),
		inv.PDFPath,
		total,
		formatTimestamp(inv.CreatedAt),
		formatTimestamp(inv.UpdatedAt),
	)
	if err != nil {
		return storageErr("inserting invoice", err)
	}
	return nil
}

func (r *SQLiteInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invoice %s: %w", id, ErrNotFound)
	}
	return inv, err
}

func (r *SQLiteInvoiceRepo) SetArchive(ctx context.Context, id string, archiveID *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET archive_id = ?, updated_at = ? WHERE id = ?`,
		nullableString(archiveID), formatTimestamp(nowUTC()), id)
	if err != nil {
		return storageErr("updating invoice archive", err)
	}
	return requireAffected(res, "invoice", id)
}

func (r *SQLiteInvoiceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting invoice", err)
	}
	return requireAffected(res, "invoice", id)
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var issueDate string
	var dueDate, supplierID, clientID, archiveID, total sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&inv.ID, &inv.TypeCode, &inv.Number, &issueDate, &dueDate,
		&supplierID, &clientID, &archiveID, &inv.PDFPath, &total,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storageErr("scanning invoice", err)
	}

	if t := parseNullableTime(sql.NullString{String: issueDate, Valid: true}, dateLayout); t != nil {
		inv.IssueDate = *t
	}
	inv.DueDate = parseNullableTime(dueDate, dateLayout)
	if supplierID.Valid {
		inv.Owner = domain.OwnerRef{Type: domain.EntitySupplier, ID: supplierID.String}
	} else if clientID.Valid {
		inv.Owner = domain.OwnerRef{Type: domain.EntityClient, ID: clientID.String}
	}
	inv.ArchiveID = stringPtr(archiveID)
	if total.Valid && total.String != "" {
		d, err := decimal.NewFromString(total.String)
		if err != nil {
			return nil, fmt.Errorf("parsing invoice total %q: %w", total.String, err)
		}
		inv.Total = &d
	}
	if inv.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if inv.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
