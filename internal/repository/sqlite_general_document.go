package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
)

const generalDocumentColumns = `id, description, type_code, issue_date, expiry_date, owner_type, owner_id,
	archive_id, notes, created_at, updated_at`

// SQLiteGeneralDocumentRepo implements GeneralDocumentRepo using a SQLite database.
type SQLiteGeneralDocumentRepo struct {
	db db.DBTX
}

func NewSQLiteGeneralDocumentRepo(db db.DBTX) *SQLiteGeneralDocumentRepo {
	return &SQLiteGeneralDocumentRepo{db: db}
}

func (r *SQLiteGeneralDocumentRepo) Create(ctx context.Context, d *domain.GeneralDocument) error {
	var ownerType, ownerID any
	if d.Owner != nil {
		ownerType = string(d.Owner.Type)
		ownerID = d.Owner.ID
	}
	query := `INSERT INTO general_documents (` + generalDocumentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Description,
		d.TypeCode,
		d.IssueDate.Format(dateLayout),
		nullableTimeToString(d.ExpiryDate, dateLayout),
		ownerType,
		ownerID,
		nullableString(d.ArchiveID),
		d.Notes,
		formatTimestamp(d.CreatedAt),
		formatTimestamp(d.UpdatedAt),
	)
	if err != nil {
		return storageErr("inserting general document", err)
	}
	for i := range d.Attachments {
		if err := r.AddAttachment(ctx, d.ID, &d.Attachments[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteGeneralDocumentRepo) GetByID(ctx context.Context, id string) (*domain.GeneralDocument, error) {
	query := `SELECT ` + generalDocumentColumns + ` FROM general_documents WHERE id = ?`
	d, err := scanGeneralDocument(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("general document %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if d.Attachments, err = r.listAttachments(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *SQLiteGeneralDocumentRepo) AddAttachment(ctx context.Context, documentID string, a *domain.Attachment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_attachments (id, document_id, path, added_at) VALUES (?, ?, ?, ?)`,
		a.ID, documentID, a.Path, formatTimestamp(a.AddedAt))
	if err != nil {
		return storageErr("inserting attachment", err)
	}
	return nil
}

// SetArchive links the document to archiveID, or unlinks it when nil.
func (r *SQLiteGeneralDocumentRepo) SetArchive(ctx context.Context, id string, archiveID *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE general_documents SET archive_id = ?, updated_at = ? WHERE id = ?`,
		nullableString(archiveID), formatTimestamp(nowUTC()), id)
	if err != nil {
		return storageErr("updating general document archive", err)
	}
	return requireAffected(res, "general document", id)
}

func (r *SQLiteGeneralDocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM general_documents WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting general document", err)
	}
	return requireAffected(res, "general document", id)
}

func (r *SQLiteGeneralDocumentRepo) listAttachments(ctx context.Context, documentID string) ([]domain.Attachment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, path, added_at FROM document_attachments WHERE document_id = ? ORDER BY added_at, rowid`,
		documentID)
	if err != nil {
		return nil, storageErr("listing attachments", err)
	}
	defer rows.Close()

	var out []domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		var addedAt string
		if err := rows.Scan(&a.ID, &a.Path, &addedAt); err != nil {
			return nil, storageErr("scanning attachment", err)
		}
		if a.AddedAt, err = parseTimestamp("added_at", addedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating attachments", err)
	}
	return out, nil
}

func scanGeneralDocument(row rowScanner) (*domain.GeneralDocument, error) {
	var d domain.GeneralDocument
	var issueDate string
	var expiryDate, ownerType, ownerID, archiveID sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&d.ID, &d.Description, &d.TypeCode, &issueDate, &expiryDate,
		&ownerType, &ownerID, &archiveID, &d.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storageErr("scanning general document", err)
	}

	if t := parseNullableTime(sql.NullString{String: issueDate, Valid: true}, dateLayout); t != nil {
		d.IssueDate = *t
	}
	d.ExpiryDate = parseNullableTime(expiryDate, dateLayout)
	if ownerID.Valid {
		d.Owner = &domain.OwnerRef{Type: domain.EntityType(ownerType.String), ID: ownerID.String}
	}
	d.ArchiveID = stringPtr(archiveID)
	if d.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
