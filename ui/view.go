package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/ballottui/types"
)

// View renders the current view
func (m Model) View() string {
	switch m.state {
	case LoadingView:
		return fmt.Sprintf("\n  %s Loading %s…\n", m.spinner.View(), m.request.Mode)
	case ErrorView:
		return m.errorView()
	case ListView:
		return m.listView()
	case DetailView:
		return m.viewport.View() + "\n" + StatusBarStyle.Render("esc back • ↑/↓ scroll")
	default:
		return "Unknown state\n"
	}
}

func (m Model) errorView() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(ErrorStyle.Render("Could not load candidates"))
	b.WriteString("\n  ")
	b.WriteString(StatusBarStyle.Render(m.err.Error()))
	b.WriteString("\n\n  ")
	b.WriteString(StatusBarStyle.Render("r retry • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	if m.tree.Empty() {
		return "\n  " + StatusBarStyle.Render("No candidates to show.") + "\n\n  " +
			StatusBarStyle.Render("r reload • q quit") + "\n"
	}

	parts := []string{m.renderTabs(), m.renderInnerTabs(), m.list.View(), m.renderStatus()}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.tree.Branches))
	for i, b := range m.tree.Branches {
		label := fmt.Sprintf("%s (%d)", b.Label, b.Count())
		if i == m.outer {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return strings.Join(tabs, TabSeparatorStyle.Render("│"))
}

func (m Model) renderInnerTabs() string {
	branch, ok := m.currentBranch()
	if !ok || branch.IsLeaf() {
		return ""
	}
	if len(branch.Children) == 0 {
		return InactiveInnerTabStyle.Render("no roles configured")
	}
	tabs := make([]string, 0, len(branch.Children))
	for i, c := range branch.Children {
		if i == m.inner[m.outer] {
			tabs = append(tabs, ActiveInnerTabStyle.Render(c.Label))
		} else {
			tabs = append(tabs, InactiveInnerTabStyle.Render(c.Label))
		}
	}
	row := strings.Join(tabs, " ")
	if m.width > 0 {
		row = lipgloss.NewStyle().MaxWidth(m.width).Render(row)
	}
	return row
}

func (m Model) renderStatus() string {
	status := m.statusMsg
	if leaf, ok := m.currentLeaf(); ok {
		title := leaf.Term
		if leaf.Kind == types.MergedLeafNode {
			title = "All " + strings.ToLower(leaf.Category.Title())
		}
		status = fmt.Sprintf("%s • %s • %s", title, statusCount(len(leaf.Candidates)), m.statusMsg)
	}
	return StatusBarStyle.Render(status)
}

func statusCount(n int) string {
	if n == 1 {
		return "1 candidate"
	}
	return fmt.Sprintf("%d candidates", n)
}
