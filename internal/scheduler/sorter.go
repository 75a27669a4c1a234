package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/archivio/internal/domain"
)

// Classified is one dated document after threshold resolution and
// classification.
type Classified struct {
	Document  domain.DocumentSummary
	Threshold int
	Source    domain.ThresholdSource
	Result    DeadlineResult
}

func (c Classified) Deadline() time.Time {
	if c.Document.DeadlineDate == nil {
		return time.Time{}
	}
	return *c.Document.DeadlineDate
}

// CanonicalSort orders classified documents deterministically:
// 1. Deadline: earliest first
// 2. Label: lexical ascending
// 3. Kind then ID, so equal labels never swap between runs
func CanonicalSort(items []Classified) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if da, db := a.Deadline(), b.Deadline(); !da.Equal(db) {
			return da.Before(db)
		}

		if la, lb := a.Document.Label(), b.Document.Label(); la != lb {
			return la < lb
		}

		if a.Document.Kind != b.Document.Kind {
			return a.Document.Kind < b.Document.Kind
		}
		return a.Document.ID < b.Document.ID
	})
}
