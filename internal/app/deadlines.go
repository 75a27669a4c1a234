package app

import (
	"time"

	"github.com/alexanderramin/archivio/internal/domain"
)

type UpcomingRequest struct {
	// Now defaults to the current time.
	Now *time.Time
	// IncludeOK keeps OK items in the list. The summary never counts them.
	IncludeOK bool
	// Windowed loads only documents whose deadline can still alert given the
	// largest configured threshold.
	Windowed bool
}

func NewUpcomingRequest() UpcomingRequest {
	return UpcomingRequest{}
}

type DeadlineItem struct {
	ID              string                 `json:"id" yaml:"id"`
	Kind            domain.DocKind         `json:"kind" yaml:"kind"`
	Label           string                 `json:"label" yaml:"label"`
	DeadlineDate    string                 `json:"deadline_date" yaml:"deadline_date"`
	OwnerName       string                 `json:"owner_name,omitempty" yaml:"owner_name,omitempty"`
	ThresholdDays   int                    `json:"threshold_days" yaml:"threshold_days"`
	ThresholdSource domain.ThresholdSource `json:"threshold_source" yaml:"threshold_source"`
	DaysRemaining   int                    `json:"days_remaining" yaml:"days_remaining"`
	Status          domain.DeadlineStatus  `json:"status" yaml:"status"`
}

type DeadlineSummary struct {
	Expired  int `json:"expired" yaml:"expired"`
	Upcoming int `json:"upcoming" yaml:"upcoming"`
	Total    int `json:"total" yaml:"total"`
}

type UpcomingResponse struct {
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Items       []DeadlineItem  `json:"items" yaml:"items"`
	Summary     DeadlineSummary `json:"summary" yaml:"summary"`
	// Skipped lists documents whose deadline could not be read.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// ScanResult counts what one notification scan did with each alerting item.
type ScanResult struct {
	Created int
	Skipped int
	Failed  int
}
