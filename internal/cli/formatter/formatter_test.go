package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
)

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{StyleRed.Render("red"), "x"}, {"longer", "y"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"A       B",
		"──────  ─",
		"red     x",
		"longer  y",
	}, lines)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Fattu…", Truncate("Fatture fornitori", 6))
	assert.Equal(t, "été …", Truncate("été 2025", 5))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestRelativeDays(t *testing.T) {
	tests := map[int]string{0: "today", 1: "tomorrow", -1: "yesterday", 5: "in 5d", -12: "12d ago"}
	for days, want := range tests {
		assert.Equal(t, want, RelativeDays(days))
	}
}

func TestFormatBreadcrumbs(t *testing.T) {
	path := []*domain.ArchiveNode{
		{ID: "1", Code: "FY26", Description: "Fiscal year"},
		{ID: "2", Description: "Invoices"},
	}
	assert.Equal(t, "FY26 Fiscal year › Invoices", stripANSI(FormatBreadcrumbs(path)))
}

func TestFormatArchiveTree_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatArchiveTree(nil)), "Archive is empty.")
}

func TestFormatArchiveDetail(t *testing.T) {
	root := &domain.ArchiveNode{ID: "root-id", Description: "FY26", CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	box := &domain.ArchiveNode{ID: "box-id", Description: "Box 1", Period: "Q1", CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)}
	out := stripANSI(FormatArchiveDetail(&app.ArchiveDetail{
		Node:        box,
		Breadcrumbs: []*domain.ArchiveNode{root, box},
		Documents: []domain.DocumentSummary{
			{ID: "doc-1", Kind: domain.DocGeneral, Reference: "DURC", IssueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}))

	assert.Contains(t, out, "BOX 1")
	assert.Contains(t, out, "FY26 › Box 1")
	assert.Contains(t, out, "Q1")
	assert.Contains(t, out, "DOCUMENTS (1)")
	assert.Contains(t, out, "general:doc-1")
	assert.NotContains(t, out, "FOLDERS")
}

func TestFormatSearchResults_TruncationNotes(t *testing.T) {
	resp := &app.SearchResponse{
		Results: []domain.DocumentSummary{
			{ID: "i1", Kind: domain.DocInvoice, Reference: "12/2026", OwnerName: "Acme", IssueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
		Truncated: map[domain.DocKind]bool{domain.DocInvoice: true},
	}
	out := stripANSI(FormatSearchResults(resp, 50))
	assert.Contains(t, out, "Invoice 12/2026")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "first 50 invoice results")
	assert.NotContains(t, out, "general results")

	empty := stripANSI(FormatSearchResults(&app.SearchResponse{}, 50))
	assert.Contains(t, empty, "No unlinked documents match.")
}

func TestFormatDocumentDetail(t *testing.T) {
	total := decimal.RequireFromString("1220.5")
	due := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	archiveID := "gone"
	inv := &domain.Invoice{
		ID: "inv-1", TypeCode: "TD01", Number: "12/2026",
		IssueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), DueDate: &due,
		Owner: domain.OwnerRef{Type: domain.EntitySupplier, ID: "p1"}, Total: &total,
		ArchiveID: &archiveID,
	}

	out := stripANSI(FormatDocumentDetail(inv, "Energia Spa", nil))
	assert.Contains(t, out, "INVOICE 12/2026")
	assert.Contains(t, out, "2026-03-03")
	assert.Contains(t, out, "Energia Spa (supplier)")
	assert.Contains(t, out, "1220.50")
	assert.Contains(t, out, "gone (missing)")
	assert.Contains(t, out, "Config key:  invoice:TD01")

	doc := &domain.GeneralDocument{
		ID: "g1", Description: "DURC", IssueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Attachments: []domain.Attachment{{ID: "a1", Path: "/scans/durc.pdf"}},
	}
	out = stripANSI(FormatDocumentDetail(doc, "", nil))
	assert.Contains(t, out, "not linked")
	assert.Contains(t, out, "/scans/durc.pdf")
	assert.Contains(t, out, "Expires")
	assert.NotContains(t, out, "Config key")
}

func TestFormatUpcoming_EmptyAndSkipped(t *testing.T) {
	out := stripANSI(FormatUpcoming(&app.UpcomingResponse{Skipped: []string{"general:bad"}}))
	assert.Contains(t, out, "0 expired · 0 upcoming · 0 total")
	assert.Contains(t, out, "Nothing due")
	assert.Contains(t, out, "1 document(s) skipped")
	assert.Contains(t, out, "general:bad")
}

func TestFormatDeadlineConfigs(t *testing.T) {
	out := stripANSI(FormatDeadlineConfigs(
		[]domain.DeadlineConfig{{Key: "general:DURC", DaysBefore: 30, UpdatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}},
		domain.DefaultThresholds(),
	))
	assert.Contains(t, out, "general:DURC")
	assert.Contains(t, out, "30")
	assert.Contains(t, out, "Defaults: general 7d, invoice 15d")
}

func TestFormatNotificationList(t *testing.T) {
	list := []*domain.Notification{
		{ID: "11111111-aaaa", Type: domain.NotificationDeadline, Title: "Expired: DURC", CreatedAt: time.Now()},
		{ID: "22222222-bbbb", Type: domain.NotificationInfo, Title: "Imported", IsRead: true, CreatedAt: time.Now()},
	}
	out := stripANSI(FormatNotificationList(list))
	assert.Contains(t, out, "●  11111111")
	assert.Contains(t, out, "Expired: DURC")
	assert.NotContains(t, out, "●  22222222")

	assert.Contains(t, stripANSI(FormatNotificationList(nil)), "No notifications.")
}

func TestFormatNotification_KeepsTitleCasing(t *testing.T) {
	n := &domain.Notification{
		ID:        "11111111-aaaa",
		Type:      domain.NotificationDeadline,
		Title:     "Expiring soon: Contrato X",
		Message:   "Due in 3 days",
		Link:      domain.LinkDeadlines,
		CreatedAt: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
	}
	out := stripANSI(FormatNotification(n))
	assert.Contains(t, out, "NOTIFICATION")
	assert.Contains(t, out, "Expiring soon: Contrato X")
	assert.NotContains(t, out, "CONTRATO X")
	assert.Contains(t, out, "Due in 3 days")
	assert.Contains(t, out, "→ deadlines")
}

func TestFormatUnreadBanner(t *testing.T) {
	assert.Empty(t, FormatUnreadBanner(0))
	assert.Contains(t, stripANSI(FormatUnreadBanner(1)), "1 unread notification ")
	assert.Contains(t, stripANSI(FormatUnreadBanner(3)), "3 unread notifications")
}

func TestFormatScanResult(t *testing.T) {
	assert.Equal(t, "Scan complete: 2 created, 1 skipped\n", stripANSI(FormatScanResult(&app.ScanResult{Created: 2, Skipped: 1})))
	assert.Contains(t, stripANSI(FormatScanResult(&app.ScanResult{Failed: 1})), "1 failed")
}
