package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/importer"
	"github.com/alexanderramin/archivio/internal/repository"
)

type importService struct {
	uow  db.UnitOfWork
	opts options
}

func NewImportService(uow db.UnitOfWork, opts ...Option) ImportService {
	return &importService{uow: uow, opts: applyOptions(opts)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadSeedSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading seed file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema writes the whole seed file in one transaction; any failure
// leaves the database untouched.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.SeedSchema) (result *app.ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.opts.observer, "import-seed", startedAt, fields, err) }()

	if errs := importer.ValidateSeedSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(schema, s.opts.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("converting seed file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		parties := repository.NewSQLitePartyRepo(tx)
		nodes := repository.NewSQLiteArchiveRepo(tx)
		generals := repository.NewSQLiteGeneralDocumentRepo(tx)
		invoices := repository.NewSQLiteInvoiceRepo(tx)
		configs := repository.NewSQLiteDeadlineConfigRepo(tx)

		for _, p := range converted.Parties {
			if err := parties.Create(ctx, p); err != nil {
				return fmt.Errorf("creating party %q: %w", p.Name, err)
			}
		}
		for _, n := range converted.ArchiveNodes {
			if err := nodes.Create(ctx, n); err != nil {
				return fmt.Errorf("creating archive node %q: %w", n.Description, err)
			}
		}
		for _, d := range converted.GeneralDocuments {
			if err := generals.Create(ctx, d); err != nil {
				return fmt.Errorf("creating document %q: %w", d.Description, err)
			}
		}
		for _, inv := range converted.Invoices {
			if err := invoices.Create(ctx, inv); err != nil {
				return fmt.Errorf("creating invoice %q: %w", inv.Number, err)
			}
		}
		for _, c := range converted.DeadlineConfigs {
			if err := configs.Upsert(ctx, c); err != nil {
				return fmt.Errorf("setting deadline config %q: %w", c.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		Parties:         len(converted.Parties),
		ArchiveNodes:    len(converted.ArchiveNodes),
		Documents:       len(converted.GeneralDocuments),
		Invoices:        len(converted.Invoices),
		DeadlineConfigs: len(converted.DeadlineConfigs),
	}
	fields["parties"] = result.Parties
	fields["archive_nodes"] = result.ArchiveNodes
	fields["documents"] = result.Documents
	fields["invoices"] = result.Invoices
	return result, nil
}
