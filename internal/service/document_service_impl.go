package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/repository"
)

// DefaultSearchLimit caps search results per document kind.
const DefaultSearchLimit = 50

type documentService struct {
	nodes       repository.ArchiveRepo
	parties     repository.PartyRepo
	generals    repository.GeneralDocumentRepo
	invoices    repository.InvoiceRepo
	index       repository.DocumentIndexRepo
	uow         db.UnitOfWork
	searchLimit int
	opts        options
}

func NewDocumentService(
	nodes repository.ArchiveRepo,
	parties repository.PartyRepo,
	generals repository.GeneralDocumentRepo,
	invoices repository.InvoiceRepo,
	index repository.DocumentIndexRepo,
	uow db.UnitOfWork,
	searchLimit int,
	opts ...Option,
) DocumentService {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &documentService{
		nodes:       nodes,
		parties:     parties,
		generals:    generals,
		invoices:    invoices,
		index:       index,
		uow:         uow,
		searchLimit: searchLimit,
		opts:        applyOptions(opts),
	}
}

// Search looks through documents not yet linked to any archive node.
// Matching is a case-folded substring test on the reference (description
// or invoice number) and the owner's name. Each kind is capped separately;
// generals come first.
func (s *documentService) Search(ctx context.Context, req app.SearchRequest) (*app.SearchResponse, error) {
	kinds, err := parseKindFilter(req.Kind)
	if err != nil {
		return nil, err
	}
	owner, err := parseEntityFilter(req.EntityType)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.searchLimit
	}

	f := newFolder()
	needle := f.fold(strings.TrimSpace(req.Query))
	resp := &app.SearchResponse{Truncated: make(map[domain.DocKind]bool)}

	for _, kind := range kinds {
		if kind == domain.DocInvoice && owner != nil && *owner == domain.EntityStaff {
			continue
		}
		pool, err := s.index.ListUnlinked(ctx, kind, owner)
		if err != nil {
			return nil, err
		}
		matched := 0
		for _, d := range pool {
			if !f.matches(needle, d.Reference, d.OwnerName) {
				continue
			}
			if matched == limit {
				resp.Truncated[kind] = true
				break
			}
			resp.Results = append(resp.Results, d)
			matched++
		}
	}
	return resp, nil
}

func (s *documentService) Link(ctx context.Context, ref app.DocumentRef, archiveID string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"kind": string(ref.Kind), "document_id": ref.ID, "archive_id": archiveID}
	defer func() { observe(ctx, s.opts.observer, "document-link", startedAt, fields, err) }()

	if _, err = s.nodes.GetByID(ctx, archiveID); err != nil {
		return err
	}
	return s.setArchive(ctx, ref, &archiveID)
}

func (s *documentService) Unlink(ctx context.Context, ref app.DocumentRef) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"kind": string(ref.Kind), "document_id": ref.ID}
	defer func() { observe(ctx, s.opts.observer, "document-unlink", startedAt, fields, err) }()

	return s.setArchive(ctx, ref, nil)
}

func (s *documentService) setArchive(ctx context.Context, ref app.DocumentRef, archiveID *string) error {
	switch ref.Kind {
	case domain.DocGeneral:
		return s.generals.SetArchive(ctx, ref.ID, archiveID)
	case domain.DocInvoice:
		return s.invoices.SetArchive(ctx, ref.ID, archiveID)
	default:
		return domain.Invalidf("unknown document kind %q", ref.Kind)
	}
}

func (s *documentService) ListLinked(ctx context.Context, archiveID string) ([]domain.DocumentSummary, error) {
	return s.index.ListByArchive(ctx, archiveID)
}

func (s *documentService) Get(ctx context.Context, ref app.DocumentRef) (domain.Document, error) {
	switch ref.Kind {
	case domain.DocGeneral:
		return s.generals.GetByID(ctx, ref.ID)
	case domain.DocInvoice:
		return s.invoices.GetByID(ctx, ref.ID)
	default:
		return nil, domain.Invalidf("unknown document kind %q", ref.Kind)
	}
}

func (s *documentService) Dangling(ctx context.Context) ([]domain.DocumentSummary, error) {
	return s.index.ListDangling(ctx)
}

func (s *documentService) CreateGeneral(ctx context.Context, in app.GeneralDocumentInput) (doc *domain.GeneralDocument, err error) {
	startedAt := time.Now()
	fields := map[string]any{"description": in.Description}
	defer func() { observe(ctx, s.opts.observer, "document-create-general", startedAt, fields, err) }()

	trimInput(&in.Description, &in.TypeCode, &in.OwnerType, &in.OwnerID, &in.Notes)
	if err = validateInput(in); err != nil {
		return nil, err
	}
	if in.ExpiryDate != nil && in.ExpiryDate.Before(in.IssueDate) {
		return nil, domain.Invalidf("expiry date %s is before issue date %s",
			in.ExpiryDate.Format("2006-01-02"), in.IssueDate.Format("2006-01-02"))
	}

	now := s.opts.now().UTC()
	doc = &domain.GeneralDocument{
		ID:          uuid.New().String(),
		Description: in.Description,
		TypeCode:    strings.ToUpper(in.TypeCode),
		IssueDate:   domain.DateOnly(in.IssueDate),
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.ExpiryDate != nil {
		expiry := domain.DateOnly(*in.ExpiryDate)
		doc.ExpiryDate = &expiry
	}
	if in.OwnerID != "" {
		if err = s.checkOwner(ctx, domain.EntityType(in.OwnerType), in.OwnerID); err != nil {
			return nil, err
		}
		doc.Owner = &domain.OwnerRef{Type: domain.EntityType(in.OwnerType), ID: in.OwnerID}
	}
	for _, path := range in.Attachments {
		if strings.TrimSpace(path) == "" {
			continue
		}
		doc.Attachments = append(doc.Attachments, domain.Attachment{
			ID:      uuid.New().String(),
			Path:    path,
			AddedAt: now,
		})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteGeneralDocumentRepo(tx).Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	fields["id"] = doc.ID
	return doc, nil
}

func (s *documentService) CreateInvoice(ctx context.Context, in app.InvoiceInput) (inv *domain.Invoice, err error) {
	startedAt := time.Now()
	fields := map[string]any{"number": in.Number}
	defer func() { observe(ctx, s.opts.observer, "document-create-invoice", startedAt, fields, err) }()

	trimInput(&in.TypeCode, &in.Number, &in.OwnerType, &in.OwnerID, &in.Total)
	if err = validateInput(in); err != nil {
		return nil, err
	}
	if err = s.checkOwner(ctx, domain.EntityType(in.OwnerType), in.OwnerID); err != nil {
		return nil, err
	}

	now := s.opts.now().UTC()
	inv = &domain.Invoice{
		ID:        uuid.New().String(),
		TypeCode:  strings.ToUpper(in.TypeCode),
		Number:    in.Number,
		IssueDate: domain.DateOnly(in.IssueDate),
		Owner:     domain.OwnerRef{Type: domain.EntityType(in.OwnerType), ID: in.OwnerID},
		PDFPath:   in.PDFPath,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.DueDate != nil {
		due := domain.DateOnly(*in.DueDate)
		inv.DueDate = &due
	}
	if in.Total != "" {
		total, perr := decimal.NewFromString(in.Total)
		if perr != nil {
			return nil, domain.Invalidf("total %q: %v", in.Total, perr)
		}
		inv.Total = &total
	}

	if err = s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	fields["id"] = inv.ID
	return inv, nil
}

// checkOwner verifies the party exists and has the declared kind.
func (s *documentService) checkOwner(ctx context.Context, kind domain.EntityType, id string) error {
	p, err := s.parties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Kind != kind {
		return domain.Invalidf("owner %s is a %s, not a %s", id, p.Kind, kind)
	}
	return nil
}

// ParseDocumentRef parses "general:<id>" or "invoice:<id>".
func ParseDocumentRef(s string) (app.DocumentRef, error) {
	kind, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || id == "" || !domain.ValidDocKinds[strings.ToLower(kind)] {
		return app.DocumentRef{}, domain.Invalidf("document reference %q: expected general:<id> or invoice:<id>", s)
	}
	return app.DocumentRef{Kind: domain.DocKind(strings.ToLower(kind)), ID: id}, nil
}

func formatRef(ref app.DocumentRef) string {
	return fmt.Sprintf("%s:%s", ref.Kind, ref.ID)
}
