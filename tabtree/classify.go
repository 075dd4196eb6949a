package tabtree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qyinm/ballottui/types"
)

var (
	// ErrEmptyRoleConfig is returned when an "All" merge has no roles to merge.
	ErrEmptyRoleConfig = errors.New("no role names configured for merge")
	// ErrNotMergeable is returned for categories that never get an "All" tab.
	ErrNotMergeable = errors.New("category does not support merged tabs")
)

// FilterByExactRole returns the records whose post title equals roleName
// after trimming. A blank role name matches nothing, so malformed posts
// never leak into a tab.
func FilterByExactRole(records []types.Candidate, roleName string) []types.Candidate {
	want := types.NormalizeTitle(roleName)
	out := make([]types.Candidate, 0)
	if want == "" {
		return out
	}
	for _, r := range records {
		if r.PostTitle() == want {
			out = append(out, r)
		}
	}
	return out
}

// FilterByAcademicSubstring returns the records whose post title contains
// groupTerm, e.g. every role under "Bioscience". A blank term matches nothing.
func FilterByAcademicSubstring(records []types.Candidate, groupTerm string) []types.Candidate {
	want := types.NormalizeTitle(groupTerm)
	out := make([]types.Candidate, 0)
	if want == "" {
		return out
	}
	for _, r := range records {
		title := r.PostTitle()
		if title != "" && strings.Contains(title, want) {
			out = append(out, r)
		}
	}
	return out
}

// FilterCombinedPosts concatenates the exact-role matches of every name in
// roleNames, in order. Records are not deduplicated; since each record has
// one title it can only land in one role anyway, unless a name is repeated.
func FilterCombinedPosts(records []types.Candidate, roleNames []string) ([]types.Candidate, error) {
	out := make([]types.Candidate, 0)
	if len(roleNames) == 0 {
		return out, ErrEmptyRoleConfig
	}
	for _, name := range roleNames {
		matched := FilterByExactRole(records, name)
		if len(matched) == 0 {
			continue
		}
		out = append(out, matched...)
	}
	return out, nil
}

// CombinedPosts merges every configured role of an officer category.
func (c Config) CombinedPosts(records []types.Candidate, cat types.Category) ([]types.Candidate, error) {
	if !cat.Officer() {
		return make([]types.Candidate, 0), fmt.Errorf("merge %s: %w", cat, ErrNotMergeable)
	}
	out, err := FilterCombinedPosts(records, c.roles[cat])
	if err != nil {
		return out, fmt.Errorf("merge %s: %w", cat, err)
	}
	return out, nil
}
