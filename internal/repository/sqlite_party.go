package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
)

// SQLitePartyRepo implements PartyRepo using a SQLite database.
type SQLitePartyRepo struct {
	db db.DBTX
}

func NewSQLitePartyRepo(db db.DBTX) *SQLitePartyRepo {
	return &SQLitePartyRepo{db: db}
}

func (r *SQLitePartyRepo) Create(ctx context.Context, p *domain.Party) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO parties (id, kind, name, tax_code, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, string(p.Kind), p.Name, p.TaxCode, formatTimestamp(p.CreatedAt))
	if err != nil {
		return storageErr("inserting party", err)
	}
	return nil
}

func (r *SQLitePartyRepo) GetByID(ctx context.Context, id string) (*domain.Party, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, kind, name, tax_code, created_at FROM parties WHERE id = ?`, id)
	p, err := scanParty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("party %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLitePartyRepo) List(ctx context.Context, kind *domain.EntityType) ([]*domain.Party, error) {
	query := `SELECT id, kind, name, tax_code, created_at FROM parties`
	var args []any
	if kind != nil {
		query += ` WHERE kind = ?`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY name COLLATE NOCASE, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("listing parties", err)
	}
	defer rows.Close()

	var parties []*domain.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating parties", err)
	}
	return parties, nil
}

func scanParty(row rowScanner) (*domain.Party, error) {
	var p domain.Party
	var kind, createdAt string
	if err := row.Scan(&p.ID, &kind, &p.Name, &p.TaxCode, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storageErr("scanning party", err)
	}
	p.Kind = domain.EntityType(kind)
	var err error
	if p.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}
