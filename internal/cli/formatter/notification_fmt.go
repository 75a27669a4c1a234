package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
)

// FormatNotificationList renders notifications newest first, unread ones
// marked with a dot.
func FormatNotificationList(list []*domain.Notification) string {
	if len(list) == 0 {
		return Dim("No notifications.") + "\n"
	}
	rows := make([][]string, 0, len(list))
	for _, n := range list {
		marker, title := " ", n.Title
		if !n.IsRead {
			marker = StyleYellowBold.Render("●")
			title = Bold(title)
		}
		rows = append(rows, []string{
			marker,
			Dim(ShortID(n.ID)),
			notificationTypeStyle(n.Type).Render(string(n.Type)),
			title,
			Dim(n.CreatedAt.Local().Format("2006-01-02 15:04")),
		})
	}
	return RenderTable([]string{"", "ID", "TYPE", "TITLE", "CREATED"}, rows)
}

// FormatNotification renders a single notification. The title goes in the
// body so it keeps the casing it was stored with.
func FormatNotification(n *domain.Notification) string {
	var b strings.Builder
	b.WriteString(Bold(n.Title) + "\n\n")
	b.WriteString(labelValue("Type", string(n.Type)) + "\n")
	b.WriteString(labelValue("Created", n.CreatedAt.Local().Format("2006-01-02 15:04")))
	if n.Message != "" {
		b.WriteString("\n\n" + n.Message)
	}
	if n.Link != "" {
		b.WriteString("\n\n" + StyleBlue.Render("→ "+n.Link))
	}
	return RenderBox("Notification", b.String()) + "\n"
}

// FormatScanResult renders the outcome of one deadline scan.
func FormatScanResult(r *app.ScanResult) string {
	out := fmt.Sprintf("Scan complete: %s created, %s skipped",
		StyleGreen.Render(fmt.Sprint(r.Created)), Dim(fmt.Sprint(r.Skipped)))
	if r.Failed > 0 {
		out += ", " + StyleRed.Render(fmt.Sprintf("%d failed", r.Failed))
	}
	return out + "\n"
}

// FormatUnreadBanner renders the unread count shown on interactive start.
func FormatUnreadBanner(count int) string {
	if count == 0 {
		return ""
	}
	noun := "notifications"
	if count == 1 {
		noun = "notification"
	}
	return StyleYellowBold.Render(fmt.Sprintf("● %d unread %s", count, noun)) +
		Dim(" (archivio notify ls)") + "\n"
}

// FormatImportResult summarises a seed import.
func FormatImportResult(r *app.ImportResult) string {
	return fmt.Sprintf("Imported %d parties, %d archive nodes, %d documents, %d invoices, %d deadline configs\n",
		r.Parties, r.ArchiveNodes, r.Documents, r.Invoices, r.DeadlineConfigs)
}

func notificationTypeStyle(t domain.NotificationType) lipgloss.Style {
	switch t {
	case domain.NotificationDeadline:
		return StyleRed
	case domain.NotificationSystem:
		return StylePurple
	default:
		return StyleBlue
	}
}
