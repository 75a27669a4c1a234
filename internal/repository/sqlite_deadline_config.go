package repository

import (
	"context"

	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
)

// SQLiteDeadlineConfigRepo implements DeadlineConfigRepo using a SQLite database.
type SQLiteDeadlineConfigRepo struct {
	db db.DBTX
}

func NewSQLiteDeadlineConfigRepo(db db.DBTX) *SQLiteDeadlineConfigRepo {
	return &SQLiteDeadlineConfigRepo{db: db}
}

func (r *SQLiteDeadlineConfigRepo) List(ctx context.Context) ([]domain.DeadlineConfig, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, days_before, updated_at FROM deadline_configs ORDER BY key`)
	if err != nil {
		return nil, storageErr("listing deadline configs", err)
	}
	defer rows.Close()

	var configs []domain.DeadlineConfig
	for rows.Next() {
		var c domain.DeadlineConfig
		var updatedAt string
		if err := rows.Scan(&c.Key, &c.DaysBefore, &updatedAt); err != nil {
			return nil, storageErr("scanning deadline config", err)
		}
		if c.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating deadline configs", err)
	}
	return configs, nil
}

func (r *SQLiteDeadlineConfigRepo) Upsert(ctx context.Context, c *domain.DeadlineConfig) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO deadline_configs (key, days_before, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET days_before = excluded.days_before, updated_at = excluded.updated_at`,
		c.Key, c.DaysBefore, formatTimestamp(c.UpdatedAt))
	if err != nil {
		return storageErr("upserting deadline config", err)
	}
	return nil
}

// Delete removes the override for key. ErrNotFound when no override is set.
func (r *SQLiteDeadlineConfigRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM deadline_configs WHERE key = ?`, key)
	if err != nil {
		return storageErr("deleting deadline config", err)
	}
	return requireAffected(res, "deadline config", key)
}
