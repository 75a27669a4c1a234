package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/archivio/internal/domain"
)

// Converted holds the domain objects produced from a seed file, ordered so
// that inserting them front to back satisfies every reference.
type Converted struct {
	Parties          []*domain.Party
	ArchiveNodes     []*domain.ArchiveNode
	GeneralDocuments []*domain.GeneralDocument
	Invoices         []*domain.Invoice
	DeadlineConfigs  []*domain.DeadlineConfig
}

// Convert transforms a validated SeedSchema into domain objects ready for
// persistence. Call ValidateSeedSchema first; Convert assumes the schema is
// valid.
func Convert(schema *SeedSchema, now time.Time) (*Converted, error) {
	out := &Converted{}

	parties := make(map[string]*domain.Party) // ref -> party
	for _, p := range schema.Parties {
		party := &domain.Party{
			ID:        uuid.New().String(),
			Kind:      domain.EntityType(p.Kind),
			Name:      p.Name,
			TaxCode:   p.TaxCode,
			CreatedAt: now,
		}
		parties[p.Ref] = party
		out.Parties = append(out.Parties, party)
	}

	archive := make(map[string]string) // ref -> UUID
	for i, n := range schema.Archive {
		realID := uuid.New().String()
		archive[n.Ref] = realID

		var parentID *string
		if n.ParentRef != nil && *n.ParentRef != "" {
			if pid, ok := archive[*n.ParentRef]; ok {
				parentID = &pid
			}
		}
		// Later nodes get later timestamps so listings keep file order.
		at := now.Add(time.Duration(i) * time.Microsecond)
		out.ArchiveNodes = append(out.ArchiveNodes, &domain.ArchiveNode{
			ID:          realID,
			Code:        n.Code,
			Description: n.Description,
			Period:      n.Period,
			DateLabel:   n.DateLabel,
			Notes:       n.Notes,
			ParentID:    parentID,
			CreatedAt:   at,
			UpdatedAt:   at,
		})
	}

	for _, d := range schema.Documents {
		issue, err := time.Parse(dateLayout, d.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("parsing issue_date: %w", err)
		}
		expiry, err := parseOptionalDate(d.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("parsing expiry_date: %w", err)
		}
		doc := &domain.GeneralDocument{
			ID:          uuid.New().String(),
			Description: d.Description,
			TypeCode:    d.TypeCode,
			IssueDate:   issue,
			ExpiryDate:  expiry,
			ArchiveID:   resolveArchive(archive, d.ArchiveRef),
			Notes:       d.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if d.OwnerRef != nil {
			if p, ok := parties[*d.OwnerRef]; ok {
				doc.Owner = &domain.OwnerRef{Type: p.Kind, ID: p.ID}
			}
		}
		for _, path := range d.Attachments {
			doc.Attachments = append(doc.Attachments, domain.Attachment{
				ID:      uuid.New().String(),
				Path:    path,
				AddedAt: now,
			})
		}
		out.GeneralDocuments = append(out.GeneralDocuments, doc)
	}

	for _, inv := range schema.Invoices {
		issue, err := time.Parse(dateLayout, inv.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("parsing issue_date: %w", err)
		}
		due, err := parseOptionalDate(inv.DueDate)
		if err != nil {
			return nil, fmt.Errorf("parsing due_date: %w", err)
		}
		owner, ok := parties[inv.OwnerRef]
		if !ok {
			return nil, fmt.Errorf("invoice %s: unknown party %q", inv.Number, inv.OwnerRef)
		}
		invoice := &domain.Invoice{
			ID:        uuid.New().String(),
			TypeCode:  inv.TypeCode,
			Number:    inv.Number,
			IssueDate: issue,
			DueDate:   due,
			Owner:     domain.OwnerRef{Type: owner.Kind, ID: owner.ID},
			ArchiveID: resolveArchive(archive, inv.ArchiveRef),
			PDFPath:   inv.PDFPath,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if inv.Total != "" {
			total, err := decimal.NewFromString(inv.Total)
			if err != nil {
				return nil, fmt.Errorf("parsing total: %w", err)
			}
			invoice.Total = &total
		}
		out.Invoices = append(out.Invoices, invoice)
	}

	for _, c := range schema.Deadlines {
		cfg := &domain.DeadlineConfig{Key: c.Key, DaysBefore: c.DaysBefore, UpdatedAt: now}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		out.DeadlineConfigs = append(out.DeadlineConfigs, cfg)
	}

	return out, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func resolveArchive(refs map[string]string, ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	if id, ok := refs[*ref]; ok {
		return &id
	}
	return nil
}
