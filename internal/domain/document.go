package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerRef points at the party a document belongs to.
type OwnerRef struct {
	Type EntityType
	ID   string
}

// Attachment is a file path recorded against a general document. The file
// itself is managed outside the archive.
type Attachment struct {
	ID      string
	Path    string
	AddedAt time.Time
}

// GeneralDocument is a dated document (certificate, contract, permit) whose
// optional expiry date drives deadline alerts.
type GeneralDocument struct {
	ID          string
	Description string
	TypeCode    string
	IssueDate   time.Time
	ExpiryDate  *time.Time
	Owner       *OwnerRef
	ArchiveID   *string
	Attachments []Attachment
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Invoice is a commercial invoice issued to a client or received from a
// supplier. Its due date drives deadline alerts.
type Invoice struct {
	ID        string
	TypeCode  string
	Number    string
	IssueDate time.Time
	DueDate   *time.Time
	Owner     OwnerRef
	ArchiveID *string
	PDFPath   string
	Total     *decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document is the tagged variant over GeneralDocument and Invoice. Both
// implement the same accessor surface so callers never switch on row shape.
type Document interface {
	DocumentID() string
	DocumentKind() DocKind
	Reference() string
	DocumentTypeCode() string
	Issued() time.Time
	Deadline() *time.Time
	OwnerRef() *OwnerRef
	ArchiveRef() *string
}

var (
	_ Document = (*GeneralDocument)(nil)
	_ Document = (*Invoice)(nil)
)

func (d *GeneralDocument) DocumentID() string { return d.ID }
func (d *GeneralDocument) DocumentKind() DocKind { return DocGeneral }
func (d *GeneralDocument) Reference() string { return d.Description }
func (d *GeneralDocument) DocumentTypeCode() string { return d.TypeCode }
func (d *GeneralDocument) Issued() time.Time { return d.IssueDate }
func (d *GeneralDocument) Deadline() *time.Time { return d.ExpiryDate }
func (d *GeneralDocument) OwnerRef() *OwnerRef { return d.Owner }
func (d *GeneralDocument) ArchiveRef() *string { return d.ArchiveID }

func (d *Invoice) DocumentID() string { return d.ID }
func (d *Invoice) DocumentKind() DocKind { return DocInvoice }
func (d *Invoice) Reference() string { return d.Number }
func (d *Invoice) DocumentTypeCode() string { return d.TypeCode }
func (d *Invoice) Issued() time.Time { return d.IssueDate }
func (d *Invoice) Deadline() *time.Time { return d.DueDate }
func (d *Invoice) ArchiveRef() *string { return d.ArchiveID }

func (d *Invoice) OwnerRef() *OwnerRef {
	if d.Owner.ID == "" {
		return nil
	}
	return &d.Owner
}

// DocumentSummary is the common projection of both document kinds, computed
// once at the storage boundary with the owner's display name resolved.
type DocumentSummary struct {
	ID           string
	Kind         DocKind
	Reference    string
	TypeCode     string
	IssueDate    time.Time
	DeadlineDate *time.Time
	OwnerType    EntityType
	OwnerID      string
	OwnerName    string
	ArchiveID    *string
}

// Summarize projects any Document onto a DocumentSummary.
func Summarize(d Document, ownerName string) DocumentSummary {
	s := DocumentSummary{
		ID:           d.DocumentID(),
		Kind:         d.DocumentKind(),
		Reference:    d.Reference(),
		TypeCode:     d.DocumentTypeCode(),
		IssueDate:    d.Issued(),
		DeadlineDate: d.Deadline(),
		OwnerName:    ownerName,
		ArchiveID:    d.ArchiveRef(),
	}
	if o := d.OwnerRef(); o != nil {
		s.OwnerType = o.Type
		s.OwnerID = o.ID
	}
	return s
}

// Label is the human-readable name used in lists and notification titles.
func (s DocumentSummary) Label() string {
	if s.Kind == DocInvoice {
		return "Invoice " + CoalesceStr(s.Reference, s.ID)
	}
	return CoalesceStr(s.Reference, s.ID)
}

// ThresholdKey returns the type-specific deadline config key, or "" when the
// document carries no type code.
func (s DocumentSummary) ThresholdKey() string {
	if s.TypeCode == "" {
		return ""
	}
	return TypeConfigKey(s.Kind, s.TypeCode)
}
