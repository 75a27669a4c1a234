package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/repository"
	"github.com/alexanderramin/archivio/internal/scheduler"
)

// errAlreadyNotified aborts the per-item transaction when a live or
// same-day notification exists for the dedup key.
var errAlreadyNotified = errors.New("already notified")

type notificationService struct {
	notifications repository.NotificationRepo
	deadlines     app.UpcomingDeadlinesUseCase
	uow           db.UnitOfWork
	opts          options
}

func NewNotificationService(
	notifications repository.NotificationRepo,
	deadlines app.UpcomingDeadlinesUseCase,
	uow db.UnitOfWork,
	opts ...Option,
) NotificationService {
	return &notificationService{
		notifications: notifications,
		deadlines:     deadlines,
		uow:           uow,
		opts:          applyOptions(opts),
	}
}

// Scan raises one notification per alerting (document, status) pair. A new
// one is inserted only when no notification with the same dedup key was
// created today and none is still unread. Check and insert share a
// transaction, and the unique (dedup_key, created_on) index turns a racing
// duplicate into a conflict that is counted as skipped.
func (s *notificationService) Scan(ctx context.Context) (result *app.ScanResult, err error) {
	startedAt := time.Now()
	result = &app.ScanResult{}
	fields := map[string]any{}
	defer func() {
		fields["created"] = result.Created
		fields["skipped"] = result.Skipped
		fields["failed"] = result.Failed
		observe(ctx, s.opts.observer, "notification-scan", startedAt, fields, err)
	}()

	now := s.opts.now()
	resp, err := s.deadlines.Upcoming(ctx, app.UpcomingRequest{Now: &now, Windowed: true})
	if err != nil {
		return result, err
	}
	day := now.Format("2006-01-02")

	for _, item := range resp.Items {
		if !scheduler.Alerting(item.Status) {
			continue
		}
		n := deadlineNotification(item, now)
		insErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			repo := repository.NewSQLiteNotificationRepo(tx)
			active, err := repo.HasActive(ctx, *n.DedupKey, day)
			if err != nil {
				return err
			}
			if active {
				return errAlreadyNotified
			}
			return repo.Create(ctx, n)
		})
		switch {
		case insErr == nil:
			result.Created++
		case errors.Is(insErr, errAlreadyNotified), errors.Is(insErr, domain.ErrConflict):
			result.Skipped++
		default:
			result.Failed++
			s.opts.logger.WarnContext(ctx, "creating deadline notification failed",
				"dedup_key", *n.DedupKey, "error", insErr)
		}
	}
	return result, nil
}

func deadlineNotification(item app.DeadlineItem, now time.Time) *domain.Notification {
	key := domain.DeadlineDedupKey(item.Kind, item.ID, item.Status)
	deadline, _ := time.Parse("2006-01-02", item.DeadlineDate)
	return &domain.Notification{
		ID:        uuid.New().String(),
		Type:      domain.NotificationDeadline,
		Title:     domain.DeadlineTitle(item.Status, item.Label),
		Message:   domain.DeadlineMessage(item.Status, item.Label, deadline, item.DaysRemaining),
		Link:      domain.LinkDeadlines,
		CreatedAt: now,
		DedupKey:  &key,
	}
}

func (s *notificationService) List(ctx context.Context, limit int, unreadOnly bool) ([]*domain.Notification, error) {
	return s.notifications.List(ctx, limit, unreadOnly)
}

func (s *notificationService) UnreadCount(ctx context.Context) (int, error) {
	return s.notifications.CountUnread(ctx)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.opts.observer, "notification-read", startedAt, map[string]any{"id": id}, err) }()

	return s.notifications.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context) (n int, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.opts.observer, "notification-read-all", startedAt, map[string]any{"count": n}, err) }()

	return s.notifications.MarkAllRead(ctx)
}

// Delete removes a notification; unknown ids are ignored. A deadline alert
// deleted while its condition persists is raised again by the next scan.
func (s *notificationService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.opts.observer, "notification-delete", startedAt, map[string]any{"id": id}, err) }()

	return s.notifications.Delete(ctx, id)
}

func (s *notificationService) Create(ctx context.Context, in app.NotificationInput) (n *domain.Notification, err error) {
	startedAt := time.Now()
	fields := map[string]any{"type": in.Type}
	defer func() { observe(ctx, s.opts.observer, "notification-create", startedAt, fields, err) }()

	trimInput(&in.Type, &in.Title, &in.Message, &in.Link)
	if err = validateInput(in); err != nil {
		return nil, err
	}
	n = &domain.Notification{
		ID:        uuid.New().String(),
		Type:      domain.NotificationType(in.Type),
		Title:     in.Title,
		Message:   in.Message,
		Link:      in.Link,
		CreatedAt: s.opts.now(),
	}
	if err = s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	fields["id"] = n.ID
	return n, nil
}

func (s *notificationService) Open(ctx context.Context, id string) (*domain.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.IsRead {
		if err := s.MarkRead(ctx, id); err != nil {
			return nil, err
		}
		n.MarkRead()
	}
	return n, nil
}
