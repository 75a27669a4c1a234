package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
)

// archiveColumns is the canonical SELECT column list for archive_nodes.
const archiveColumns = `id, code, description, period, date_label, notes, parent_id, created_at, updated_at`

// SQLiteArchiveRepo implements ArchiveRepo using a SQLite database.
type SQLiteArchiveRepo struct {
	db db.DBTX
}

// NewSQLiteArchiveRepo creates a new SQLiteArchiveRepo.
func NewSQLiteArchiveRepo(db db.DBTX) *SQLiteArchiveRepo {
	return &SQLiteArchiveRepo{db: db}
}

func (r *SQLiteArchiveRepo) Create(ctx context.Context, n *domain.ArchiveNode) error {
	query := `INSERT INTO archive_nodes (` + archiveColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.Code,
		n.Description,
		n.Period,
		n.DateLabel,
		n.Notes,
		n.ParentID, // *string: nil becomes SQL NULL
		formatTimestamp(n.CreatedAt),
		formatTimestamp(n.UpdatedAt),
	)
	if err != nil {
		return storageErr("inserting archive node", err)
	}
	return nil
}

func (r *SQLiteArchiveRepo) GetByID(ctx context.Context, id string) (*domain.ArchiveNode, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive_nodes WHERE id = ?`
	n, err := r.scanNode(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("archive node %s: %w", id, ErrNotFound)
	}
	return n, err
}

// ListChildren returns the direct children of parentID, or the roots when
// parentID is nil, newest first with ties broken by id.
func (r *SQLiteArchiveRepo) ListChildren(ctx context.Context, parentID *string) ([]*domain.ArchiveNode, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == nil {
		rows, err = r.db.QueryContext(ctx, `SELECT `+archiveColumns+` FROM archive_nodes
			WHERE parent_id IS NULL ORDER BY created_at DESC, id ASC`)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+archiveColumns+` FROM archive_nodes
			WHERE parent_id = ? ORDER BY created_at DESC, id ASC`, *parentID)
	}
	if err != nil {
		return nil, storageErr("listing archive children", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteArchiveRepo) ListAll(ctx context.Context) ([]*domain.ArchiveNode, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+archiveColumns+` FROM archive_nodes
		ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, storageErr("listing archive nodes", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteArchiveRepo) Update(ctx context.Context, n *domain.ArchiveNode) error {
	query := `UPDATE archive_nodes SET code = ?, description = ?, period = ?, date_label = ?,
		notes = ?, parent_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		n.Code,
		n.Description,
		n.Period,
		n.DateLabel,
		n.Notes,
		n.ParentID,
		formatTimestamp(n.UpdatedAt),
		n.ID,
	)
	if err != nil {
		return storageErr("updating archive node", err)
	}
	return requireAffected(res, "archive node", n.ID)
}

// Delete removes the node row only. Children and linked documents keep
// their references to it.
func (r *SQLiteArchiveRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM archive_nodes WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting archive node", err)
	}
	return requireAffected(res, "archive node", id)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteArchiveRepo) scanNode(row rowScanner) (*domain.ArchiveNode, error) {
	var n domain.ArchiveNode
	var parentID sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&n.ID, &n.Code, &n.Description, &n.Period, &n.DateLabel, &n.Notes,
		&parentID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storageErr("scanning archive node", err)
	}

	n.ParentID = stringPtr(parentID)
	if n.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *SQLiteArchiveRepo) scanNodes(rows *sql.Rows) ([]*domain.ArchiveNode, error) {
	var nodes []*domain.ArchiveNode
	for rows.Next() {
		n, err := r.scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating archive nodes", err)
	}
	return nodes, nil
}
