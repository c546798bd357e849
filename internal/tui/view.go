package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	title := "towerstyle"
	if m.path != "" {
		title = fmt.Sprintf("towerstyle • %s", m.path)
	}
	if m.dirty {
		title += dirtyStyle.Render(" *")
	}
	sections = append(sections, titleStyle.Render(title))
	sections = append(sections, m.renderTree())

	if m.errorMsg != "" {
		sections = append(sections, errorBannerStyle.Render("✗ "+m.errorMsg))
	} else if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}

	footer := fmt.Sprintf("undo %d · redo %d\n%s",
		len(m.doc.UndoStack()), len(m.doc.RedoStack()), m.help.View(m.keys))
	sections = append(sections, footerStyle.Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTree draws the rows that fit the window around the cursor.
func (m Model) renderTree() string {
	visible := max(m.height-8, 1)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.rows))

	var lines []string
	for i := start; i < end; i++ {
		r := m.rows[i]
		label := kindStyle(r.kind).Render(r.name)
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", r.depth), label,
			structuralStyle.Render("("+string(r.kind)+")"))
		if i == m.cursor {
			lines = append(lines, selectedItemStyle.Render(line))
			continue
		}
		lines = append(lines, itemStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}
