package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/archivio/internal/cli/formatter"
	"github.com/alexanderramin/archivio/internal/domain"
)

// archivioHuhTheme matches huh forms to the formatter palette.
func archivioHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirm asks before a destructive action. Without a terminal there is
// nobody to ask, so the caller must pass --yes.
func (a *App) confirm(title, description string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title, description)
	}
	if !a.interactive() {
		return false, domain.Invalidf("confirmation required; re-run with --yes")
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(archivioHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
