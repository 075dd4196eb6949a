package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/ballottui/tabtree"
	"github.com/qyinm/ballottui/types"
)

const fetchTimeout = 20 * time.Second

// Message types for async operations

type candidatesMsg struct {
	requestID int
	records   []types.Candidate
	err       error
}

// SettingsMsg replaces the tab configuration of a running Model, typically
// sent through tea.Program.Send when the settings file changes. A request
// that differs from the current one triggers a refetch.
type SettingsMsg struct {
	Config  tabtree.Config
	Request types.Request
}

type clipboardMsg struct {
	text string
	err  error
}

// fetchCandidates returns a tea.Cmd that loads the feed asynchronously
func fetchCandidates(source types.CandidateSource, req types.Request, requestID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		records, err := source.GetCandidates(ctx, req)
		return candidatesMsg{requestID: requestID, records: records, err: err}
	}
}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{text: text, err: clipboardWrite(text)}
	}
}
