package scheduler

import (
	"time"

	"github.com/alexanderramin/archivio/internal/domain"
)

type DeadlineInput struct {
	Today         time.Time
	Deadline      time.Time
	ThresholdDays int
}

type DeadlineResult struct {
	DaysRemaining int
	Status        domain.DeadlineStatus
}

// ClassifyDeadline compares calendar days, not elapsed hours: both dates are
// truncated to midnight before subtracting, so a deadline later today is
// still 0 days away.
func ClassifyDeadline(in DeadlineInput) DeadlineResult {
	days := DaysBetween(in.Today, in.Deadline)
	switch {
	case days < 0:
		return DeadlineResult{DaysRemaining: days, Status: domain.StatusExpired}
	case days <= in.ThresholdDays:
		return DeadlineResult{DaysRemaining: days, Status: domain.StatusUpcoming}
	default:
		return DeadlineResult{DaysRemaining: days, Status: domain.StatusOK}
	}
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	from, to := domain.DateOnly(a), domain.DateOnly(b)
	// Both sides are UTC midnights, so the difference is a whole number of days.
	return int(to.Sub(from).Hours() / 24)
}

// Summary counts alerting documents. OK documents are never counted.
type Summary struct {
	Expired  int
	Upcoming int
	Total    int
}

func (s *Summary) Add(status domain.DeadlineStatus) {
	switch status {
	case domain.StatusExpired:
		s.Expired++
	case domain.StatusUpcoming:
		s.Upcoming++
	default:
		return
	}
	s.Total = s.Expired + s.Upcoming
}

// Alerting reports whether a status should produce a notification.
func Alerting(status domain.DeadlineStatus) bool {
	return status == domain.StatusExpired || status == domain.StatusUpcoming
}

// WindowEnd is the last deadline day that can still alert given the largest
// configured threshold. Documents due later are OK by construction.
func WindowEnd(today time.Time, maxThreshold int) time.Time {
	return domain.DateOnly(today).AddDate(0, 0, maxThreshold)
}
