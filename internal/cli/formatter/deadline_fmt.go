package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
)

// FormatUpcoming renders the deadline report: a summary line followed by
// one row per document in deadline order.
func FormatUpcoming(resp *app.UpcomingResponse) string {
	var b strings.Builder
	b.WriteString(FormatDeadlineSummary(resp.Summary) + "\n\n")

	if len(resp.Items) == 0 {
		b.WriteString(StyleGreen.Render("Nothing due within the alert windows.") + "\n")
	} else {
		headers := []string{"STATUS", "WHEN", "DEADLINE", "DOCUMENT", "OWNER", "ALERT"}
		rows := make([][]string, 0, len(resp.Items))
		for _, it := range resp.Items {
			rows = append(rows, []string{
				StatusIndicator(it.Status),
				RelativeDaysStyled(it.DaysRemaining),
				it.DeadlineDate,
				Truncate(it.Label, 40),
				orDash(Truncate(it.OwnerName, 24)),
				Dim(fmt.Sprintf("%dd (%s)", it.ThresholdDays, it.ThresholdSource)),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(resp.Skipped) > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("%d document(s) skipped with unreadable dates: %s",
			len(resp.Skipped), strings.Join(resp.Skipped, ", "))) + "\n")
	}
	return b.String()
}

// FormatDeadlineSummary renders "2 expired · 3 upcoming · 5 total".
func FormatDeadlineSummary(s app.DeadlineSummary) string {
	return fmt.Sprintf("%s %s %s %s %s",
		StyleRed.Render(fmt.Sprintf("%d expired", s.Expired)),
		Dim("·"),
		StyleYellow.Render(fmt.Sprintf("%d upcoming", s.Upcoming)),
		Dim("·"),
		Bold(fmt.Sprintf("%d total", s.Total)),
	)
}

// FormatDeadlineConfigs lists overrides followed by the literal defaults.
func FormatDeadlineConfigs(configs []domain.DeadlineConfig, defaults domain.ThresholdDefaults) string {
	var b strings.Builder
	if len(configs) == 0 {
		b.WriteString(Dim("No threshold overrides.") + "\n")
	} else {
		rows := make([][]string, 0, len(configs))
		for _, c := range configs {
			rows = append(rows, []string{c.Key, strconv.Itoa(c.DaysBefore), c.UpdatedAt.Format(dateLayout)})
		}
		b.WriteString(RenderTable([]string{"KEY", "DAYS", "UPDATED"}, rows))
	}
	b.WriteString("\n" + Dim(fmt.Sprintf("Defaults: general %dd, invoice %dd", defaults.General, defaults.Invoice)) + "\n")
	return b.String()
}
