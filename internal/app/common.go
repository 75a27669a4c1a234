package app

import (
	"time"

	"github.com/alexanderramin/archivio/internal/domain"
)

// ArchiveNodeInput carries the editable fields of an archive node.
type ArchiveNodeInput struct {
	Code        string `yaml:"code" validate:"max=64"`
	Description string `yaml:"description" validate:"required,max=500"`
	Period      string `yaml:"period" validate:"max=64"`
	DateLabel   string `yaml:"date_label" validate:"max=64"`
	Notes       string `yaml:"notes"`
	ParentID    *string
}

type PartyInput struct {
	Kind    string `validate:"required,oneof=supplier client staff"`
	Name    string `validate:"required,max=200"`
	TaxCode string `validate:"max=32"`
}

type GeneralDocumentInput struct {
	Description string    `validate:"required,max=500"`
	TypeCode    string    `validate:"max=32"`
	IssueDate   time.Time `validate:"required"`
	ExpiryDate  *time.Time
	OwnerType   string `validate:"omitempty,oneof=supplier client staff"`
	OwnerID     string `validate:"required_with=OwnerType"`
	Attachments []string
	Notes       string
}

type InvoiceInput struct {
	TypeCode  string    `validate:"required,max=32"`
	Number    string    `validate:"required,max=64"`
	IssueDate time.Time `validate:"required"`
	DueDate   *time.Time
	OwnerType string `validate:"required,oneof=supplier client"`
	OwnerID   string `validate:"required"`
	PDFPath   string
	// Total is a decimal string such as "1220.50"; empty means unknown.
	Total string `validate:"omitempty,numeric"`
}

type NotificationInput struct {
	Type    string `validate:"required,oneof=deadline system info"`
	Title   string `validate:"required,max=200"`
	Message string
	Link    string
}

// DocumentRef addresses one document of either kind.
type DocumentRef struct {
	Kind domain.DocKind
	ID   string
}

type SearchRequest struct {
	Query string
	// Kind is "all", "general" or "invoice".
	Kind string
	// EntityType is "all", "supplier", "client" or "staff".
	EntityType string
	// Limit caps each kind separately. Zero uses the configured default.
	Limit int
}

func NewSearchRequest(query string) SearchRequest {
	return SearchRequest{Query: query, Kind: domain.FilterAll, EntityType: domain.FilterAll}
}

type SearchResponse struct {
	// Results lists general documents first, then invoices.
	Results []domain.DocumentSummary
	// Truncated reports, per kind, whether matches were dropped by the cap.
	Truncated map[domain.DocKind]bool
}

// ArchiveTreeNode is one node of the rendered archive forest.
type ArchiveTreeNode struct {
	Node      *domain.ArchiveNode
	Children  []*ArchiveTreeNode
	Documents int
}

// ArchiveDetail is a node with its location and contents.
type ArchiveDetail struct {
	Node        *domain.ArchiveNode
	Breadcrumbs []*domain.ArchiveNode
	Children    []*domain.ArchiveNode
	Documents   []domain.DocumentSummary
}
