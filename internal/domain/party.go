package domain

import "time"

// Party is a supplier, client or staff member that can own documents.
type Party struct {
	ID        string
	Kind      EntityType
	Name      string
	TaxCode   string
	CreatedAt time.Time
}
