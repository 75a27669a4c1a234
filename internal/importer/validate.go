package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/archivio/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidateSeedSchema checks the seed file for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateSeedSchema(schema *SeedSchema) []error {
	var errs []error

	partyKinds := make(map[string]domain.EntityType)
	errs = append(errs, validateParties(schema.Parties, partyKinds)...)

	archiveRefs := make(map[string]bool)
	errs = append(errs, validateArchive(schema.Archive, archiveRefs)...)

	errs = append(errs, validateDocuments(schema.Documents, partyKinds, archiveRefs)...)
	errs = append(errs, validateInvoices(schema.Invoices, partyKinds, archiveRefs)...)
	errs = append(errs, validateDeadlines(schema.Deadlines)...)

	return errs
}

func validateParties(parties []PartyImport, kinds map[string]domain.EntityType) []error {
	var errs []error
	for i, p := range parties {
		prefix := fmt.Sprintf("parties[%d]", i)
		if p.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := kinds[p.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, p.Ref))
		}
		if !domain.ValidEntityTypes[p.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, p.Kind))
		}
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.Ref != "" {
			kinds[p.Ref] = domain.EntityType(p.Kind)
		}
	}
	return errs
}

// validateArchive requires parents to be declared before their children,
// which also rules out cycles inside the file.
func validateArchive(nodes []ArchiveNodeImport, refs map[string]bool) []error {
	var errs []error
	for i, n := range nodes {
		prefix := fmt.Sprintf("archive[%d]", i)
		if n.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[n.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, n.Ref))
		}
		if strings.TrimSpace(n.Description) == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		}
		if n.ParentRef != nil && *n.ParentRef != "" && !refs[*n.ParentRef] {
			errs = append(errs, fmt.Errorf("%s.parent_ref: %q is not declared above this node", prefix, *n.ParentRef))
		}
		if n.Ref != "" {
			refs[n.Ref] = true
		}
	}
	return errs
}

func validateDocuments(docs []DocumentImport, parties map[string]domain.EntityType, archive map[string]bool) []error {
	var errs []error
	for i, d := range docs {
		prefix := fmt.Sprintf("documents[%d]", i)
		if strings.TrimSpace(d.Description) == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		}
		errs = append(errs, validateDate(prefix+".issue_date", d.IssueDate, true)...)
		if d.ExpiryDate != nil {
			errs = append(errs, validateDate(prefix+".expiry_date", *d.ExpiryDate, false)...)
		}
		if d.OwnerRef != nil && *d.OwnerRef != "" {
			if _, ok := parties[*d.OwnerRef]; !ok {
				errs = append(errs, fmt.Errorf("%s.owner_ref: unknown party %q", prefix, *d.OwnerRef))
			}
		}
		errs = append(errs, validateArchiveRef(prefix, d.ArchiveRef, archive)...)
	}
	return errs
}

func validateInvoices(invoices []InvoiceImport, parties map[string]domain.EntityType, archive map[string]bool) []error {
	var errs []error
	for i, inv := range invoices {
		prefix := fmt.Sprintf("invoices[%d]", i)
		if inv.TypeCode == "" {
			errs = append(errs, fmt.Errorf("%s.type_code is required", prefix))
		}
		if inv.Number == "" {
			errs = append(errs, fmt.Errorf("%s.number is required", prefix))
		}
		errs = append(errs, validateDate(prefix+".issue_date", inv.IssueDate, true)...)
		if inv.DueDate != nil {
			errs = append(errs, validateDate(prefix+".due_date", *inv.DueDate, false)...)
		}
		kind, ok := parties[inv.OwnerRef]
		switch {
		case inv.OwnerRef == "":
			errs = append(errs, fmt.Errorf("%s.owner_ref is required", prefix))
		case !ok:
			errs = append(errs, fmt.Errorf("%s.owner_ref: unknown party %q", prefix, inv.OwnerRef))
		case kind == domain.EntityStaff:
			errs = append(errs, fmt.Errorf("%s.owner_ref: invoices belong to a supplier or client, %q is staff", prefix, inv.OwnerRef))
		}
		if inv.Total != "" {
			if _, err := decimal.NewFromString(inv.Total); err != nil {
				errs = append(errs, fmt.Errorf("%s.total: invalid amount %q", prefix, inv.Total))
			}
		}
		errs = append(errs, validateArchiveRef(prefix, inv.ArchiveRef, archive)...)
	}
	return errs
}

func validateDeadlines(configs []DeadlineConfigImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, c := range configs {
		prefix := fmt.Sprintf("deadlines[%d]", i)
		cfg := domain.DeadlineConfig{Key: c.Key, DaysBefore: c.DaysBefore}
		if err := cfg.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
			continue
		}
		if seen[cfg.Key] {
			errs = append(errs, fmt.Errorf("%s.key: duplicate key %q", prefix, cfg.Key))
		}
		seen[cfg.Key] = true
	}
	return errs
}

func validateArchiveRef(prefix string, ref *string, archive map[string]bool) []error {
	if ref == nil || *ref == "" || archive[*ref] {
		return nil
	}
	return []error{fmt.Errorf("%s.archive_ref: unknown archive node %q", prefix, *ref)}
}

func validateDate(field, value string, required bool) []error {
	if value == "" {
		if required {
			return []error{fmt.Errorf("%s is required", field)}
		}
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return nil
}
