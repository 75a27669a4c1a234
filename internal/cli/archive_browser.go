package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/archivio/internal/cli/formatter"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/service"
)

type browserKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Quit}
}

func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBrowserKeyMap() browserKeyMap {
	return browserKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open: key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "open")),
		Back: key.NewBinding(key.WithKeys("esc", "backspace", "left", "h"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// archiveLevelLoadedMsg carries the contents of one archive level.
type archiveLevelLoadedMsg struct {
	nodes []*domain.ArchiveNode
	docs  []domain.DocumentSummary
	err   error
}

// archiveBrowser walks the archive forest one level at a time.
type archiveBrowser struct {
	ctx     context.Context
	archive service.ArchiveService

	// path holds the opened nodes from the top level down.
	path    []*domain.ArchiveNode
	nodes   []*domain.ArchiveNode
	docs    []domain.DocumentSummary
	cursor  int
	loading bool
	err     error

	keys browserKeyMap
	help help.Model
}

func newArchiveBrowser(ctx context.Context, archive service.ArchiveService) *archiveBrowser {
	return &archiveBrowser{
		ctx:     ctx,
		archive: archive,
		loading: true,
		keys:    newBrowserKeyMap(),
		help:    help.New(),
	}
}

func (b *archiveBrowser) Init() tea.Cmd {
	return b.loadLevel()
}

func (b *archiveBrowser) current() *domain.ArchiveNode {
	if len(b.path) == 0 {
		return nil
	}
	return b.path[len(b.path)-1]
}

func (b *archiveBrowser) loadLevel() tea.Cmd {
	ctx, archive, node := b.ctx, b.archive, b.current()
	return func() tea.Msg {
		if node == nil {
			nodes, err := archive.ListChildren(ctx, nil)
			return archiveLevelLoadedMsg{nodes: nodes, err: err}
		}
		detail, err := archive.Detail(ctx, node.ID)
		if err != nil {
			return archiveLevelLoadedMsg{err: err}
		}
		return archiveLevelLoadedMsg{nodes: detail.Children, docs: detail.Documents}
	}
}

func (b *archiveBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case archiveLevelLoadedMsg:
		b.loading = false
		b.err = msg.err
		b.nodes = msg.nodes
		b.docs = msg.docs
		b.cursor = 0
		return b, nil

	case tea.WindowSizeMsg:
		b.help.Width = msg.Width
		return b, nil

	case tea.KeyMsg:
		return b.updateKeys(msg)
	}
	return b, nil
}

func (b *archiveBrowser) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}
	case key.Matches(msg, b.keys.Down):
		if b.cursor < len(b.nodes)-1 {
			b.cursor++
		}
	case key.Matches(msg, b.keys.Open):
		if b.loading || b.cursor >= len(b.nodes) {
			return b, nil
		}
		b.path = append(b.path, b.nodes[b.cursor])
		b.loading = true
		return b, b.loadLevel()
	case key.Matches(msg, b.keys.Back):
		if len(b.path) == 0 {
			if msg.Type == tea.KeyEsc {
				return b, tea.Quit
			}
			return b, nil
		}
		b.path = b.path[:len(b.path)-1]
		b.loading = true
		return b, b.loadLevel()
	}
	return b, nil
}

func (b *archiveBrowser) View() string {
	var s strings.Builder
	s.WriteString("\n  " + formatter.StyleHeader.Render("Archive"))
	if len(b.path) > 0 {
		s.WriteString(formatter.Dim(" › ") + formatter.FormatBreadcrumbs(b.path))
	}
	s.WriteString("\n\n")

	switch {
	case b.loading:
		s.WriteString("  " + formatter.Dim("Loading...") + "\n")
	case b.err != nil:
		s.WriteString("  " + formatter.StyleRed.Render("Error: "+b.err.Error()) + "\n")
	default:
		b.renderLevel(&s)
	}

	s.WriteString("\n  " + b.help.View(b.keys) + "\n")
	return s.String()
}

func (b *archiveBrowser) renderLevel(s *strings.Builder) {
	if len(b.nodes) == 0 {
		s.WriteString("  " + formatter.Dim("No sub-folders.") + "\n")
	}
	for i, n := range b.nodes {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == b.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		period := ""
		if n.Period != "" {
			period = "  " + formatter.Dim(n.Period)
		}
		fmt.Fprintf(s, "  %s%s %s%s\n", cursor,
			formatter.StyleGreen.Render(formatter.ShortID(n.ID)),
			nameStyle.Render(n.DisplayName()),
			period)
	}

	if len(b.docs) > 0 {
		s.WriteString("\n  " + formatter.Dim(plural(len(b.docs), "document", "documents")) + "\n")
		for _, d := range b.docs {
			fmt.Fprintf(s, "    %s %s\n", formatter.KindBadge(d.Kind), d.Label())
		}
	}
}

func newArchiveBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the archive interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return domain.Invalidf("archive browse needs an interactive terminal; use 'archive tree' instead")
			}
			ctx := cmd.Context()
			p := tea.NewProgram(newArchiveBrowser(ctx, app.Archive),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}
