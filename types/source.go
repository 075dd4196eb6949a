package types

import "context"

// Mode selects which feed a request reads.
type Mode int

const (
	Listing Mode = iota
	Results
)

func (m Mode) String() string {
	switch m {
	case Listing:
		return "listing"
	case Results:
		return "results"
	default:
		return "unknown"
	}
}

// Request identifies a single feed fetch.
type Request struct {
	Mode       Mode
	ElectionID string
}

// CandidateSource is the core abstraction for data access.
// No bubbletea dependency; the TUI and the MCP server both call it.
type CandidateSource interface {
	GetCandidates(ctx context.Context, req Request) ([]Candidate, error)
}
