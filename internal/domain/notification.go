package domain

import (
	"fmt"
	"time"
)

// LinkDeadlines is the view id deadline notifications navigate to.
const LinkDeadlines = "deadlines"

type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
	// DedupKey is set for generated notifications only.
	DedupKey *string
}

// CreatedOn is the calendar day the notification was created, in the
// location of CreatedAt.
func (n *Notification) CreatedOn() string {
	return n.CreatedAt.Format("2006-01-02")
}

// MarkRead flips the notification to read. There is no way back.
func (n *Notification) MarkRead() {
	n.IsRead = true
}

// DeadlineDedupKey identifies one alert per (document, status) pair,
// independent of the document's current description.
func DeadlineDedupKey(kind DocKind, docID string, status DeadlineStatus) string {
	return fmt.Sprintf("%s:%s:%s", kind, docID, status)
}

// DeadlineTitle renders the canonical title for a deadline alert.
func DeadlineTitle(status DeadlineStatus, label string) string {
	if status == StatusExpired {
		return "Expired: " + label
	}
	return "Expiring soon: " + label
}

// DeadlineMessage renders the alert body.
func DeadlineMessage(status DeadlineStatus, label string, deadline time.Time, daysRemaining int) string {
	date := deadline.Format("2006-01-02")
	switch {
	case status == StatusExpired && daysRemaining == -1:
		return fmt.Sprintf("%s expired yesterday (%s).", label, date)
	case status == StatusExpired:
		return fmt.Sprintf("%s expired %d days ago (%s).", label, -daysRemaining, date)
	case daysRemaining == 0:
		return fmt.Sprintf("%s expires today (%s).", label, date)
	case daysRemaining == 1:
		return fmt.Sprintf("%s expires tomorrow (%s).", label, date)
	default:
		return fmt.Sprintf("%s expires in %d days (%s).", label, daysRemaining, date)
	}
}
