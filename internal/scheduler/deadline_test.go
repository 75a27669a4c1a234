package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/archivio/internal/domain"
)

var today = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func TestClassifyDeadline_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		deadline  time.Time
		threshold int
		days      int
		status    domain.DeadlineStatus
	}{
		{"yesterday", today.AddDate(0, 0, -1), 7, -1, domain.StatusExpired},
		{"long ago", today.AddDate(0, 0, -40), 7, -40, domain.StatusExpired},
		{"today", today, 7, 0, domain.StatusUpcoming},
		{"threshold edge", today.AddDate(0, 0, 7), 7, 7, domain.StatusUpcoming},
		{"one past threshold", today.AddDate(0, 0, 8), 7, 8, domain.StatusOK},
		{"zero threshold today", today, 0, 0, domain.StatusUpcoming},
		{"zero threshold tomorrow", today.AddDate(0, 0, 1), 0, 1, domain.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDeadline(DeadlineInput{Today: today, Deadline: tt.deadline, ThresholdDays: tt.threshold})
			assert.Equal(t, tt.days, got.DaysRemaining)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestClassifyDeadline_IgnoresTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	earlyMorning := time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)

	got := ClassifyDeadline(DeadlineInput{Today: lateEvening, Deadline: earlyMorning, ThresholdDays: 0})
	assert.Equal(t, 1, got.DaysRemaining)
	assert.Equal(t, domain.StatusOK, got.Status)

	got = ClassifyDeadline(DeadlineInput{Today: earlyMorning, Deadline: lateEvening, ThresholdDays: 7})
	assert.Equal(t, -1, got.DaysRemaining)
	assert.Equal(t, domain.StatusExpired, got.Status)
}

func TestDaysBetween_AcrossZones(t *testing.T) {
	rome := time.FixedZone("CET", 3600)
	a := time.Date(2026, 3, 10, 0, 30, 0, 0, rome)
	b := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(a, b))
}

func TestSummary_TotalExcludesOK(t *testing.T) {
	statuses := []domain.DeadlineStatus{
		domain.StatusExpired, domain.StatusOK, domain.StatusUpcoming,
		domain.StatusUpcoming, domain.StatusOK, domain.StatusExpired, domain.StatusUpcoming,
	}
	var s Summary
	for _, st := range statuses {
		s.Add(st)
		assert.Equal(t, s.Expired+s.Upcoming, s.Total)
	}
	assert.Equal(t, 2, s.Expired)
	assert.Equal(t, 3, s.Upcoming)
	assert.Equal(t, 5, s.Total)
}

func TestWindowEnd(t *testing.T) {
	now := time.Date(2026, 3, 10, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC), WindowEnd(now, 15))
}

func TestAlerting(t *testing.T) {
	assert.True(t, Alerting(domain.StatusExpired))
	assert.True(t, Alerting(domain.StatusUpcoming))
	assert.False(t, Alerting(domain.StatusOK))
}

func TestCanonicalSort(t *testing.T) {
	d := func(n int) *time.Time {
		v := today.AddDate(0, 0, n)
		return &v
	}
	items := []Classified{
		{Document: domain.DocumentSummary{ID: "c", Kind: domain.DocGeneral, Reference: "Zeta", DeadlineDate: d(1)}},
		{Document: domain.DocumentSummary{ID: "b", Kind: domain.DocInvoice, Reference: "9", DeadlineDate: d(1)}},
		{Document: domain.DocumentSummary{ID: "a", Kind: domain.DocGeneral, Reference: "Alpha", DeadlineDate: d(5)}},
		{Document: domain.DocumentSummary{ID: "e", Kind: domain.DocGeneral, Reference: "Alpha", DeadlineDate: d(-2)}},
		{Document: domain.DocumentSummary{ID: "d", Kind: domain.DocGeneral, Reference: "Alpha", DeadlineDate: d(-2)}},
	}
	CanonicalSort(items)

	var ids []string
	for _, it := range items {
		ids = append(ids, it.Document.ID)
	}
	// "Invoice 9" sorts before "Zeta" on the same day.
	assert.Equal(t, []string{"d", "e", "b", "c", "a"}, ids)
}
