package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/archivio/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleRedBold    = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the style for a deadline status.
func StatusStyle(status domain.DeadlineStatus) lipgloss.Style {
	switch status {
	case domain.StatusExpired:
		return StyleRed
	case domain.StatusUpcoming:
		return StyleYellow
	case domain.StatusOK:
		return StyleGreen
	default:
		return StyleDim
	}
}

// StatusIndicator renders "● EXPIRED", "● UPCOMING" or "● OK".
func StatusIndicator(status domain.DeadlineStatus) string {
	label := string(status)
	if label == "" {
		label = "UNKNOWN"
	}
	return StatusStyle(status).Render("● " + label)
}

// KindBadge renders a short tag for a document kind.
func KindBadge(kind domain.DocKind) string {
	switch kind {
	case domain.DocInvoice:
		return StylePurple.Render("INV")
	default:
		return StyleBlue.Render("DOC")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
