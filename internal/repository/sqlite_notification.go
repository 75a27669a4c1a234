package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
)

const notificationColumns = `id, type, title, message, link, is_read, created_at, dedup_key`

// SQLiteNotificationRepo implements NotificationRepo using a SQLite database.
type SQLiteNotificationRepo struct {
	db db.DBTX
}

func NewSQLiteNotificationRepo(db db.DBTX) *SQLiteNotificationRepo {
	return &SQLiteNotificationRepo{db: db}
}

func (r *SQLiteNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (` + notificationColumns + `, created_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		string(n.Type),
		n.Title,
		n.Message,
		n.Link,
		boolToInt(n.IsRead),
		formatTimestamp(n.CreatedAt),
		nullableString(n.DedupKey),
		n.CreatedOn(),
	)
	if err != nil {
		return storageErr("inserting notification", err)
	}
	return nil
}

func (r *SQLiteNotificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return n, err
}

// List returns notifications newest first. A limit <= 0 means no limit.
func (r *SQLiteNotificationRepo) List(ctx context.Context, limit int, unreadOnly bool) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("listing notifications", err)
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating notifications", err)
	}
	return out, nil
}

func (r *SQLiteNotificationRepo) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE is_read = 0`).Scan(&n); err != nil {
		return 0, storageErr("counting unread notifications", err)
	}
	return n, nil
}

func (r *SQLiteNotificationRepo) HasActive(ctx context.Context, dedupKey string, day string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM notifications WHERE dedup_key = ? AND (created_on = ? OR is_read = 0))`,
		dedupKey, day).Scan(&exists)
	if err != nil {
		return false, storageErr("checking notification dedup", err)
	}
	return exists == 1, nil
}

// MarkRead sets is_read on an existing notification. Marking an already
// read notification succeeds.
func (r *SQLiteNotificationRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return storageErr("marking notification read", err)
	}
	return requireAffected(res, "notification", id)
}

func (r *SQLiteNotificationRepo) MarkAllRead(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE is_read = 0`)
	if err != nil {
		return 0, storageErr("marking all notifications read", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("reading affected rows", err)
	}
	return int(n), nil
}

// Delete removes a notification. Deleting an unknown id is a no-op.
func (r *SQLiteNotificationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id); err != nil {
		return storageErr("deleting notification", err)
	}
	return nil
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	var typ, createdAt string
	var isRead int
	var dedupKey sql.NullString
	err := row.Scan(&n.ID, &typ, &n.Title, &n.Message, &n.Link, &isRead, &createdAt, &dedupKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storageErr("scanning notification", err)
	}
	n.Type = domain.NotificationType(typ)
	n.IsRead = intToBool(isRead)
	n.DedupKey = stringPtr(dedupKey)
	if n.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	return &n, nil
}
