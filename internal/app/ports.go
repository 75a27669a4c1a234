package app

import (
	"context"

	"github.com/alexanderramin/archivio/internal/importer"
)

type UpcomingDeadlinesUseCase interface {
	Upcoming(ctx context.Context, req UpcomingRequest) (*UpcomingResponse, error)
}

type ScanNotificationsUseCase interface {
	Scan(ctx context.Context) (*ScanResult, error)
}

type ImportResult struct {
	Parties         int
	ArchiveNodes    int
	Documents       int
	Invoices        int
	DeadlineConfigs int
}

type ImportSeedUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.SeedSchema) (*ImportResult, error)
}
