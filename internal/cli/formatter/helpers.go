package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDays describes a signed calendar-day distance from today.
func RelativeDays(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// RelativeDaysStyled colors RelativeDays by urgency: past and the next two
// days red, the coming week yellow.
func RelativeDaysStyled(days int) string {
	text := RelativeDays(days)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// FormatDate renders a date or a dim dash for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("—")
	}
	return t.Format(dateLayout)
}

// ShortID returns the first eight characters of a UUID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Truncate cuts plain text to width visible cells, ending with an
// ellipsis. Apply it before styling. A non-positive width returns s as is.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String() + "…"
}

// orDash returns s or a dim dash when s is empty.
func orDash(s string) string {
	if s == "" {
		return Dim("—")
	}
	return s
}

// labelValue renders one "Label:  value" line for detail boxes.
func labelValue(label, value string) string {
	return fmt.Sprintf("%s %s", StyleDim.Render(fmt.Sprintf("%-12s", label+":")), value)
}
