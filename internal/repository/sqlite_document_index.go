package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
)

// Both selects project onto the same column list so one scanner serves them.
const (
	generalSummarySelect = `SELECT g.id, 'general', g.description, g.type_code, g.issue_date,
		g.expiry_date, g.owner_type, g.owner_id, p.name, g.archive_id
		FROM general_documents g
		LEFT JOIN parties p ON p.id = g.owner_id`

	invoiceSummarySelect = `SELECT i.id, 'invoice', i.number, i.type_code, i.issue_date,
		i.due_date,
		CASE WHEN i.supplier_id IS NOT NULL THEN 'supplier' ELSE 'client' END,
		COALESCE(i.supplier_id, i.client_id), p.name, i.archive_id
		FROM invoices i
		LEFT JOIN parties p ON p.id = COALESCE(i.supplier_id, i.client_id)`
)

// SQLiteDocumentIndexRepo implements DocumentIndexRepo using a SQLite database.
type SQLiteDocumentIndexRepo struct {
	db db.DBTX
}

func NewSQLiteDocumentIndexRepo(db db.DBTX) *SQLiteDocumentIndexRepo {
	return &SQLiteDocumentIndexRepo{db: db}
}

// ListUnlinked returns documents of one kind with no archive reference,
// newest first. Invoices never belong to staff, so that filter yields nothing.
func (r *SQLiteDocumentIndexRepo) ListUnlinked(ctx context.Context, kind domain.DocKind, ownerType *domain.EntityType) ([]domain.DocumentSummary, error) {
	var query string
	var args []any
	switch kind {
	case domain.DocGeneral:
		query = generalSummarySelect + ` WHERE g.archive_id IS NULL`
		if ownerType != nil {
			query += ` AND g.owner_type = ?`
			args = append(args, string(*ownerType))
		}
		query += ` ORDER BY g.created_at DESC, g.rowid DESC`
	case domain.DocInvoice:
		query = invoiceSummarySelect + ` WHERE i.archive_id IS NULL`
		if ownerType != nil {
			switch *ownerType {
			case domain.EntitySupplier:
				query += ` AND i.supplier_id IS NOT NULL`
			case domain.EntityClient:
				query += ` AND i.client_id IS NOT NULL`
			default:
				return nil, nil
			}
		}
		query += ` ORDER BY i.created_at DESC, i.rowid DESC`
	default:
		return nil, domain.Invalidf("unknown document kind %q", kind)
	}
	return r.query(ctx, "listing unlinked documents", query, args...)
}

// ListByArchive returns the documents linked to archiveID, generals first.
func (r *SQLiteDocumentIndexRepo) ListByArchive(ctx context.Context, archiveID string) ([]domain.DocumentSummary, error) {
	generals, err := r.query(ctx, "listing linked general documents",
		generalSummarySelect+` WHERE g.archive_id = ? ORDER BY g.issue_date DESC, g.rowid DESC`, archiveID)
	if err != nil {
		return nil, err
	}
	invoices, err := r.query(ctx, "listing linked invoices",
		invoiceSummarySelect+` WHERE i.archive_id = ? ORDER BY i.issue_date DESC, i.rowid DESC`, archiveID)
	if err != nil {
		return nil, err
	}
	return append(generals, invoices...), nil
}

func (r *SQLiteDocumentIndexRepo) ListWithDeadline(ctx context.Context, kind domain.DocKind, until *time.Time) ([]domain.DocumentSummary, error) {
	var query, column string
	switch kind {
	case domain.DocGeneral:
		query, column = generalSummarySelect, "g.expiry_date"
	case domain.DocInvoice:
		query, column = invoiceSummarySelect, "i.due_date"
	default:
		return nil, domain.Invalidf("unknown document kind %q", kind)
	}
	query += ` WHERE ` + column + ` IS NOT NULL AND ` + column + ` <> ''`
	var args []any
	if until != nil {
		query += ` AND ` + column + ` <= ?`
		args = append(args, until.Format(dateLayout))
	}
	query += ` ORDER BY ` + column
	return r.query(ctx, "listing dated documents", query, args...)
}

// ListDangling returns documents whose archive reference names a node that
// no longer exists.
func (r *SQLiteDocumentIndexRepo) ListDangling(ctx context.Context) ([]domain.DocumentSummary, error) {
	generals, err := r.query(ctx, "listing dangling general documents",
		generalSummarySelect+` WHERE g.archive_id IS NOT NULL
			AND g.archive_id NOT IN (SELECT id FROM archive_nodes) ORDER BY g.rowid`)
	if err != nil {
		return nil, err
	}
	invoices, err := r.query(ctx, "listing dangling invoices",
		invoiceSummarySelect+` WHERE i.archive_id IS NOT NULL
			AND i.archive_id NOT IN (SELECT id FROM archive_nodes) ORDER BY i.rowid`)
	if err != nil {
		return nil, err
	}
	return append(generals, invoices...), nil
}

func (r *SQLiteDocumentIndexRepo) CountByArchive(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT archive_id, COUNT(*) FROM (
			SELECT archive_id FROM general_documents WHERE archive_id IS NOT NULL
			UNION ALL
			SELECT archive_id FROM invoices WHERE archive_id IS NOT NULL
		) GROUP BY archive_id`)
	if err != nil {
		return nil, storageErr("counting linked documents", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, storageErr("scanning linked document count", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("counting linked documents", err)
	}
	return counts, nil
}

func (r *SQLiteDocumentIndexRepo) query(ctx context.Context, op, query string, args ...any) ([]domain.DocumentSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var out []domain.DocumentSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return out, nil
}

func scanSummary(row rowScanner) (domain.DocumentSummary, error) {
	var s domain.DocumentSummary
	var kind, issueDate string
	var deadline, ownerType, ownerID, ownerName, archiveID sql.NullString
	err := row.Scan(
		&s.ID, &kind, &s.Reference, &s.TypeCode, &issueDate,
		&deadline, &ownerType, &ownerID, &ownerName, &archiveID,
	)
	if err != nil {
		return s, storageErr("scanning document summary", err)
	}
	s.Kind = domain.DocKind(kind)
	if t := parseNullableTime(sql.NullString{String: issueDate, Valid: true}, dateLayout); t != nil {
		s.IssueDate = *t
	}
	// A malformed deadline comes back nil; the aggregator reports and skips it.
	s.DeadlineDate = parseNullableTime(deadline, dateLayout)
	if ownerID.Valid {
		s.OwnerType = domain.EntityType(ownerType.String)
		s.OwnerID = ownerID.String
		s.OwnerName = ownerName.String
	}
	s.ArchiveID = stringPtr(archiveID)
	return s, nil
}
