package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedSchema is the top-level YAML structure of a seed file. Entities refer
// to each other through file-local refs that are replaced by generated ids.
type SeedSchema struct {
	Parties   []PartyImport          `yaml:"parties"`
	Archive   []ArchiveNodeImport    `yaml:"archive"`
	Documents []DocumentImport       `yaml:"documents"`
	Invoices  []InvoiceImport        `yaml:"invoices"`
	Deadlines []DeadlineConfigImport `yaml:"deadlines"`
}

type PartyImport struct {
	Ref     string `yaml:"ref"`
	Kind    string `yaml:"kind"`
	Name    string `yaml:"name"`
	TaxCode string `yaml:"tax_code,omitempty"`
}

// ArchiveNodeImport must appear after the node its ParentRef names.
type ArchiveNodeImport struct {
	Ref         string  `yaml:"ref"`
	ParentRef   *string `yaml:"parent_ref,omitempty"`
	Code        string  `yaml:"code,omitempty"`
	Description string  `yaml:"description"`
	Period      string  `yaml:"period,omitempty"`
	DateLabel   string  `yaml:"date_label,omitempty"`
	Notes       string  `yaml:"notes,omitempty"`
}

type DocumentImport struct {
	Description string   `yaml:"description"`
	TypeCode    string   `yaml:"type_code,omitempty"`
	IssueDate   string   `yaml:"issue_date"`
	ExpiryDate  *string  `yaml:"expiry_date,omitempty"`
	OwnerRef    *string  `yaml:"owner_ref,omitempty"`
	ArchiveRef  *string  `yaml:"archive_ref,omitempty"`
	Attachments []string `yaml:"attachments,omitempty"`
	Notes       string   `yaml:"notes,omitempty"`
}

type InvoiceImport struct {
	TypeCode   string  `yaml:"type_code"`
	Number     string  `yaml:"number"`
	IssueDate  string  `yaml:"issue_date"`
	DueDate    *string `yaml:"due_date,omitempty"`
	OwnerRef   string  `yaml:"owner_ref"`
	ArchiveRef *string `yaml:"archive_ref,omitempty"`
	PDFPath    string  `yaml:"pdf_path,omitempty"`
	Total      string  `yaml:"total,omitempty"`
}

type DeadlineConfigImport struct {
	Key        string `yaml:"key"`
	DaysBefore int    `yaml:"days_before"`
}

// LoadSeedSchema reads and parses a seed file. JSON input is accepted too,
// being a subset of YAML.
func LoadSeedSchema(path string) (*SeedSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeedSchema(data)
}

func ParseSeedSchema(data []byte) (*SeedSchema, error) {
	var schema SeedSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &schema, nil
}
