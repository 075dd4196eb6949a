package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/ballottui/loader"
	"github.com/qyinm/ballottui/types"
)

// detailSkip lists fields rendered elsewhere in the detail view.
var detailSkip = map[string]bool{
	"Name": true, "FirstName": true, "LastName": true, "Surname": true,
	"Post": true, "Manifesto": true, "Votes": true, "Elected": true,
}

func renderDetail(c types.Candidate, width int) string {
	var b strings.Builder

	name := c.Name()
	if name == "" {
		name = "(unnamed candidate)"
	}
	b.WriteString(DetailTitleStyle.Render(name))
	b.WriteString("\n")
	if post := c.PostTitle(); post != "" {
		b.WriteString(DetailPostStyle.Render(post))
		b.WriteString("\n")
	}

	if n, ok := c.Votes(); ok {
		line := formatVotes(n)
		if c.Elected() {
			line += "  " + ElectedStyle.Render("ELECTED")
		}
		b.WriteString("\n" + line + "\n")
	}

	var extra []string
	for _, k := range c.Fields() {
		if detailSkip[k] {
			continue
		}
		if v := strings.TrimSpace(c.Field(k)); v != "" {
			extra = append(extra, DetailLabelStyle.Render(k+": ")+v)
		}
	}
	sort.Strings(extra)
	if len(extra) > 0 {
		b.WriteString("\n" + strings.Join(extra, "\n") + "\n")
	}

	if manifesto := loader.PlainText(c.Manifesto()); manifesto != "" {
		b.WriteString("\n")
		b.WriteString(renderManifesto(manifesto, max(width, 20)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderManifesto word-wraps the manifesto through glamour so bullet lists
// and paragraphs keep their shape. Plain wrapping is the fallback.
func renderManifesto(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithColorProfile(lipgloss.ColorProfile()),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := r.Render(text); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
