package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	header := headerStyle.Render("swissexplorer") + " " + pathStyle.Render(m.bundlePath)

	list := m.listView()
	detail := m.detail.View()

	listStyle, detailStyle := paneStyle, paneStyle
	if m.focusedPane == VariablePane {
		listStyle = activePaneStyle
	} else {
		detailStyle = activePaneStyle
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listStyle.Width(m.listWidth()).Height(m.paneHeight()).Render(list),
		detailStyle.Width(m.detail.Width).Height(m.paneHeight()).Render(detail),
	)

	status := statusStyle.Render(fmt.Sprintf(
		"%d variables  |  ↑/↓ navigate  tab switch  enter reconstruct  ? help  q quit",
		len(m.vars)))

	return lipgloss.JoinVertical(lipgloss.Left, header, panes, status)
}

// listView renders the variable pane, keeping the cursor visible.
func (m Model) listView() string {
	if len(m.vars) == 0 {
		return "(no variables)"
	}

	visible := m.paneHeight()
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.vars) {
		end = len(m.vars)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		sym := m.vars[i]

		mark := "  "
		if m.container[i] {
			mark = containerMarkStyle.Render("◆ ")
		}

		name := listItemStyle.Render(sym.Name)
		if i == m.cursor {
			name = listSelectedStyle.Render("> " + sym.Name)
		}
		b.WriteString(mark + name)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) helpView() string {
	rows := []struct{ key, desc string }{
		{"↑/k, ↓/j", "Move between variables / scroll elements"},
		{"g, G", "Jump to top / bottom"},
		{"tab", "Switch between panes"},
		{"enter", "Reconstruct the selected variable"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("swissexplorer keys"))
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(helpKeyStyle.Render(r.key))
		b.WriteString(r.desc)
		b.WriteByte('\n')
	}
	b.WriteString("\nPress any key to close.")
	return b.String()
}
