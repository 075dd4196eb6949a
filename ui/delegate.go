package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/qyinm/ballottui/loader"
	"github.com/qyinm/ballottui/types"
)

// CandidateDelegate renders candidate cards. Academic tabs mix several
// roles, so their cards show the post title instead of the manifesto.
type CandidateDelegate struct {
	Display types.Display
}

// candidateItem is a list row with its card excerpt worked out once, so
// rendering a frame never parses manifesto HTML.
type candidateItem struct {
	types.Candidate
	excerpt string
}

func newCandidateItem(c types.Candidate, display types.Display) candidateItem {
	excerpt := c.PostTitle()
	if display == types.DisplayStandard {
		excerpt = firstLine(loader.PlainText(c.Manifesto()))
	}
	return candidateItem{Candidate: c, excerpt: excerpt}
}

// Height returns the height of a list item (2 lines)
func (d CandidateDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between list items
func (d CandidateDelegate) Spacing() int {
	return 1
}

// Update handles updates for the delegate (no-op for candidates)
func (d CandidateDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single candidate card
func (d CandidateDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(candidateItem)
	if !ok {
		return
	}
	isSelected := index == m.Index()
	width := m.Width()

	name := c.Name()
	if name == "" {
		name = "(unnamed candidate)"
	}

	// Line 1: index + name, votes on the right in results feeds
	indexStr := fmt.Sprintf("%2d. ", index+1)
	votes := ""
	if n, ok := c.Votes(); ok {
		votes = formatVotes(n)
		if c.Elected() {
			votes = "✔ " + votes
		}
	}
	nameWidth := max(width-lipgloss.Width(indexStr)-lipgloss.Width(votes)-1, 0)
	name = ansi.Truncate(name, nameWidth, "…")
	name += strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0))

	// Line 2: post title or manifesto excerpt
	detail := ansi.Truncate(c.excerpt, max(width-4, 0), "…")

	indexStyle := lipgloss.NewStyle().Foreground(DraculaComment)
	nameStyle := lipgloss.NewStyle().Foreground(DraculaCyan)
	voteStyle := lipgloss.NewStyle().Foreground(DraculaGreen)
	detailStyle := lipgloss.NewStyle().Foreground(DraculaComment)
	if isSelected {
		indexStyle = indexStyle.Foreground(DraculaCyan).Bold(true)
		nameStyle = nameStyle.Foreground(DraculaPink).Bold(true)
		voteStyle = voteStyle.Bold(true)
		detailStyle = detailStyle.Foreground(DraculaForeground)
	}
	if c.Elected() {
		voteStyle = ElectedStyle
	}

	line1 := indexStyle.Render(indexStr) + nameStyle.Render(name) + " " + voteStyle.Render(votes)
	line2 := "    " + detailStyle.Render(detail)
	fmt.Fprint(w, line1+"\n"+line2)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// formatVotes formats vote counts with K suffixes
// 950 -> "950 votes", 1422 -> "1.4K votes"
func formatVotes(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK votes", float64(count)/1000)
	}
	if count == 1 {
		return "1 vote"
	}
	return fmt.Sprintf("%d votes", count)
}
