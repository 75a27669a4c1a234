package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/archivio/internal/app"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

type treeLine struct {
	content string
	badge   string
}

// FormatArchiveTree renders the archive forest with box-drawing connectors
// and right-aligned document counts.
func FormatArchiveTree(forest []*app.ArchiveTreeNode) string {
	if len(forest) == 0 {
		return Dim("Archive is empty.") + "\n"
	}

	var lines []treeLine
	var walk func(n *app.ArchiveTreeNode, indent string, isRoot, isLast bool)
	walk = func(n *app.ArchiveTreeNode, indent string, isRoot, isLast bool) {
		prefix, childIndent := "", ""
		if !isRoot {
			if isLast {
				prefix, childIndent = indent+treeCorner, indent+treeSpace
			} else {
				prefix, childIndent = indent+treeBranch, indent+treePipe
			}
		}

		title := n.Node.Description
		if n.Node.Code != "" {
			title = StyleGreen.Render(n.Node.Code) + " " + title
		}
		if isRoot {
			title = Bold(title)
		}
		line := treeLine{content: StyleDim.Render(prefix) + title + " " + Dim(ShortID(n.Node.ID))}
		switch {
		case n.Documents == 1:
			line.badge = StyleBlue.Render("[ 1 doc ]")
		case n.Documents > 1:
			line.badge = StyleBlue.Render(fmt.Sprintf("[ %d docs ]", n.Documents))
		}
		lines = append(lines, line)

		for i, c := range n.Children {
			walk(c, childIndent, false, i == len(n.Children)-1)
		}
	}
	for _, root := range forest {
		walk(root, "", true, true)
	}

	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l.content))
	}
	var b strings.Builder
	for _, l := range lines {
		if l.badge == "" {
			b.WriteString(l.content + "\n")
			continue
		}
		pad := width - lipgloss.Width(l.content)
		b.WriteString(l.content + strings.Repeat(" ", pad) + "  " + l.badge + "\n")
	}
	return b.String()
}
