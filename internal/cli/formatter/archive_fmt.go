package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
)

const breadcrumbSep = " › "

// FormatBreadcrumbs renders a root-first path such as "FY26 › Invoices".
func FormatBreadcrumbs(path []*domain.ArchiveNode) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = n.DisplayName()
	}
	return strings.Join(parts, Dim(breadcrumbSep))
}

// FormatArchiveList renders nodes as a table.
func FormatArchiveList(nodes []*domain.ArchiveNode) string {
	if len(nodes) == 0 {
		return Dim("No archive nodes.") + "\n"
	}
	headers := []string{"ID", "CODE", "DESCRIPTION", "PERIOD", "CREATED"}
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{
			Dim(ShortID(n.ID)),
			orDash(n.Code),
			Truncate(n.Description, 48),
			orDash(n.Period),
			n.CreatedAt.Format(dateLayout),
		})
	}
	return RenderTable(headers, rows)
}

// FormatArchiveDetail renders one node with its location, sub-folders and
// linked documents.
func FormatArchiveDetail(d *app.ArchiveDetail) string {
	n := d.Node
	var b strings.Builder
	b.WriteString(labelValue("ID", n.ID) + "\n")
	b.WriteString(labelValue("Path", FormatBreadcrumbs(d.Breadcrumbs)) + "\n")
	if n.Code != "" {
		b.WriteString(labelValue("Code", n.Code) + "\n")
	}
	if n.Period != "" {
		b.WriteString(labelValue("Period", n.Period) + "\n")
	}
	if n.DateLabel != "" {
		b.WriteString(labelValue("Date", n.DateLabel) + "\n")
	}
	if n.Notes != "" {
		b.WriteString(labelValue("Notes", n.Notes) + "\n")
	}
	b.WriteString(labelValue("Created", n.CreatedAt.Format(dateLayout)))

	out := RenderBox(n.Description, b.String()) + "\n"

	if len(d.Children) > 0 {
		out += "\n" + Header(fmt.Sprintf("Folders (%d)", len(d.Children))) + "\n"
		out += FormatArchiveList(d.Children)
	}
	out += "\n" + Header(fmt.Sprintf("Documents (%d)", len(d.Documents))) + "\n"
	out += FormatDocumentList(d.Documents)
	return out
}
