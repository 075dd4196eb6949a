package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/sahilm/fuzzy"
)

// fuzzyFilter ranks candidates by fuzzy name match, best first.
func fuzzyFilter(term string, targets []string) []list.Rank {
	matches := fuzzy.Find(term, targets)
	ranks := make([]list.Rank, len(matches))
	for i, m := range matches {
		ranks[i] = list.Rank{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
	}
	return ranks
}
