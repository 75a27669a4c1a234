package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
)

// DocumentRef renders the "kind:id" reference accepted by doc commands.
func DocumentRef(kind domain.DocKind, id string) string {
	return fmt.Sprintf("%s:%s", kind, id)
}

// FormatDocumentList renders document summaries as a table.
func FormatDocumentList(docs []domain.DocumentSummary) string {
	if len(docs) == 0 {
		return Dim("No documents.") + "\n"
	}
	headers := []string{"", "REF", "DOCUMENT", "OWNER", "ISSUED", "DEADLINE"}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{
			KindBadge(d.Kind),
			Dim(DocumentRef(d.Kind, d.ID)),
			Truncate(d.Label(), 40),
			orDash(Truncate(d.OwnerName, 24)),
			d.IssueDate.Format(dateLayout),
			FormatDate(d.DeadlineDate),
		})
	}
	return RenderTable(headers, rows)
}

// FormatSearchResults renders search hits followed by a note for every kind
// whose results were capped.
func FormatSearchResults(resp *app.SearchResponse, limit int) string {
	if len(resp.Results) == 0 {
		return Dim("No unlinked documents match.") + "\n"
	}
	out := FormatDocumentList(resp.Results)
	for _, kind := range []domain.DocKind{domain.DocGeneral, domain.DocInvoice} {
		if resp.Truncated[kind] {
			out += StyleYellow.Render(fmt.Sprintf("Showing the first %d %s results; refine the query to see more.", limit, kind)) + "\n"
		}
	}
	return out
}

// FormatDocumentDetail renders either document kind. ownerName may be empty.
func FormatDocumentDetail(doc domain.Document, ownerName string, archivePath []*domain.ArchiveNode) string {
	s := domain.Summarize(doc, ownerName)

	var b strings.Builder
	b.WriteString(labelValue("Ref", DocumentRef(s.Kind, s.ID)) + "\n")
	b.WriteString(labelValue("Type", orDash(s.TypeCode)) + "\n")
	if key := s.ThresholdKey(); key != "" {
		b.WriteString(labelValue("Config key", key) + "\n")
	}
	b.WriteString(labelValue("Issued", s.IssueDate.Format(dateLayout)) + "\n")

	deadlineLabel := "Expires"
	if s.Kind == domain.DocInvoice {
		deadlineLabel = "Due"
	}
	b.WriteString(labelValue(deadlineLabel, FormatDate(s.DeadlineDate)) + "\n")

	if s.OwnerID != "" {
		b.WriteString(labelValue("Owner", fmt.Sprintf("%s (%s)", domain.CoalesceStr(s.OwnerName, s.OwnerID), s.OwnerType)) + "\n")
	}

	switch {
	case s.ArchiveID == nil:
		b.WriteString(labelValue("Archive", Dim("not linked")))
	case len(archivePath) == 0:
		b.WriteString(labelValue("Archive", StyleRed.Render(*s.ArchiveID+" (missing)")))
	default:
		b.WriteString(labelValue("Archive", FormatBreadcrumbs(archivePath)))
	}

	switch d := doc.(type) {
	case *domain.GeneralDocument:
		if d.Notes != "" {
			b.WriteString("\n" + labelValue("Notes", d.Notes))
		}
		for _, a := range d.Attachments {
			b.WriteString("\n" + labelValue("Attachment", a.Path))
		}
	case *domain.Invoice:
		if d.Total != nil {
			b.WriteString("\n" + labelValue("Total", d.Total.StringFixed(2)))
		}
		if d.PDFPath != "" {
			b.WriteString("\n" + labelValue("PDF", d.PDFPath))
		}
	}

	return RenderBox(s.Label(), b.String()) + "\n"
}

// FormatPartyList renders parties as a table.
func FormatPartyList(parties []*domain.Party) string {
	if len(parties) == 0 {
		return Dim("No parties.") + "\n"
	}
	rows := make([][]string, 0, len(parties))
	for _, p := range parties {
		rows = append(rows, []string{Dim(p.ID), string(p.Kind), p.Name, orDash(p.TaxCode)})
	}
	return RenderTable([]string{"ID", "KIND", "NAME", "TAX CODE"}, rows)
}
