package service

import (
	"context"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/importer"
)

// ArchiveService maintains the archive forest.
type ArchiveService interface {
	Create(ctx context.Context, in app.ArchiveNodeInput) (*domain.ArchiveNode, error)
	Update(ctx context.Context, id string, in app.ArchiveNodeInput) (*domain.ArchiveNode, error)
	// Delete removes only the node. Children keep a dangling parent id and
	// linked documents a dangling archive id.
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.ArchiveNode, error)
	// List returns every node, newest first.
	List(ctx context.Context) ([]*domain.ArchiveNode, error)
	Detail(ctx context.Context, id string) (*app.ArchiveDetail, error)
	ListChildren(ctx context.Context, parentID *string) ([]*domain.ArchiveNode, error)
	Breadcrumbs(ctx context.Context, id string) ([]*domain.ArchiveNode, error)
	Tree(ctx context.Context) ([]*app.ArchiveTreeNode, error)
	Orphans(ctx context.Context) ([]*domain.ArchiveNode, error)
}

// DocumentService links documents of both kinds to archive nodes and
// registers new ones.
type DocumentService interface {
	Search(ctx context.Context, req app.SearchRequest) (*app.SearchResponse, error)
	Link(ctx context.Context, ref app.DocumentRef, archiveID string) error
	Unlink(ctx context.Context, ref app.DocumentRef) error
	ListLinked(ctx context.Context, archiveID string) ([]domain.DocumentSummary, error)
	Get(ctx context.Context, ref app.DocumentRef) (domain.Document, error)
	Dangling(ctx context.Context) ([]domain.DocumentSummary, error)
	CreateGeneral(ctx context.Context, in app.GeneralDocumentInput) (*domain.GeneralDocument, error)
	CreateInvoice(ctx context.Context, in app.InvoiceInput) (*domain.Invoice, error)
}

type PartyService interface {
	Create(ctx context.Context, in app.PartyInput) (*domain.Party, error)
	Get(ctx context.Context, id string) (*domain.Party, error)
	// List filters by kind; "" or "all" lists every party.
	List(ctx context.Context, kind string) ([]*domain.Party, error)
}

// DeadlineService classifies dated documents and manages thresholds.
type DeadlineService interface {
	Upcoming(ctx context.Context, req app.UpcomingRequest) (*app.UpcomingResponse, error)
	Configs(ctx context.Context) ([]domain.DeadlineConfig, error)
	UpdateConfigs(ctx context.Context, configs []domain.DeadlineConfig) error
	// ResetConfig returns ErrNotFound when key has no override.
	ResetConfig(ctx context.Context, key string) error
	Defaults() domain.ThresholdDefaults
}

// NotificationService turns deadline alerts into deduplicated notifications
// and manages their read state.
type NotificationService interface {
	Scan(ctx context.Context) (*app.ScanResult, error)
	List(ctx context.Context, limit int, unreadOnly bool) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context, in app.NotificationInput) (*domain.Notification, error)
	// Open marks the notification read and returns it so the caller can
	// follow its link.
	Open(ctx context.Context, id string) (*domain.Notification, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.SeedSchema) (*app.ImportResult, error)
}

var (
	_ app.UpcomingDeadlinesUseCase = (DeadlineService)(nil)
	_ app.ScanNotificationsUseCase = (NotificationService)(nil)
	_ app.ImportSeedUseCase        = (ImportService)(nil)
)
