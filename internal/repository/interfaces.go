package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/archivio/internal/domain"
)

type ArchiveRepo interface {
	Create(ctx context.Context, n *domain.ArchiveNode) error
	GetByID(ctx context.Context, id string) (*domain.ArchiveNode, error)
	ListChildren(ctx context.Context, parentID *string) ([]*domain.ArchiveNode, error)
	ListAll(ctx context.Context) ([]*domain.ArchiveNode, error)
	Update(ctx context.Context, n *domain.ArchiveNode) error
	Delete(ctx context.Context, id string) error
}

type PartyRepo interface {
	Create(ctx context.Context, p *domain.Party) error
	GetByID(ctx context.Context, id string) (*domain.Party, error)
	List(ctx context.Context, kind *domain.EntityType) ([]*domain.Party, error)
}

type GeneralDocumentRepo interface {
	Create(ctx context.Context, d *domain.GeneralDocument) error
	GetByID(ctx context.Context, id string) (*domain.GeneralDocument, error)
	AddAttachment(ctx context.Context, documentID string, a *domain.Attachment) error
	SetArchive(ctx context.Context, id string, archiveID *string) error
	Delete(ctx context.Context, id string) error
}

type InvoiceRepo interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	SetArchive(ctx context.Context, id string, archiveID *string) error
	Delete(ctx context.Context, id string) error
}

// DocumentIndexRepo serves read-only projections across both document kinds.
type DocumentIndexRepo interface {
	ListUnlinked(ctx context.Context, kind domain.DocKind, ownerType *domain.EntityType) ([]domain.DocumentSummary, error)
	ListByArchive(ctx context.Context, archiveID string) ([]domain.DocumentSummary, error)
	// ListWithDeadline returns documents with a deadline date; when until is
	// set only deadlines on or before that day are returned.
	ListWithDeadline(ctx context.Context, kind domain.DocKind, until *time.Time) ([]domain.DocumentSummary, error)
	ListDangling(ctx context.Context) ([]domain.DocumentSummary, error)
	// CountByArchive returns the number of linked documents per archive id.
	CountByArchive(ctx context.Context) (map[string]int, error)
}

type DeadlineConfigRepo interface {
	List(ctx context.Context) ([]domain.DeadlineConfig, error)
	Upsert(ctx context.Context, c *domain.DeadlineConfig) error
	Delete(ctx context.Context, key string) error
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context, limit int, unreadOnly bool) ([]*domain.Notification, error)
	CountUnread(ctx context.Context) (int, error)
	// HasActive reports whether a notification with dedupKey exists that was
	// created on day or is still unread.
	HasActive(ctx context.Context, dedupKey string, day string) (bool, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
