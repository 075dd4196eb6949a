package tabtree

import (
	"strings"

	"github.com/qyinm/ballottui/types"
)

// DefaultActiveID is the category code opened on start-up.
const DefaultActiveID = "SO"

// Options carries the raw directory settings. Role lists are pipe-delimited,
// e.g. "President|VP Activities & Development".
type Options struct {
	Results         bool
	ActiveID        string
	StudentOfficers string
	NetworkOfficers string
	AcademicGroups  string
}

// Config is the parsed, immutable category configuration.
type Config struct {
	results  bool
	activeID string
	roles    map[types.Category][]string
}

// NewConfig parses opts once. An empty ActiveID falls back to DefaultActiveID.
func NewConfig(opts Options) Config {
	active := strings.TrimSpace(opts.ActiveID)
	if active == "" {
		active = DefaultActiveID
	}
	return Config{
		results:  opts.Results,
		activeID: active,
		roles: map[types.Category][]string{
			types.StudentOfficers: ParseRoleNames(opts.StudentOfficers),
			types.NetworkOfficers: ParseRoleNames(opts.NetworkOfficers),
			types.NusDelegate:     {types.NusDelegateRole},
			types.Academic:        ParseRoleNames(opts.AcademicGroups),
		},
	}
}

// ParseRoleNames splits a pipe-delimited list, normalizing each entry and
// dropping blanks. Order is preserved.
func ParseRoleNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := types.NormalizeTitle(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c Config) Results() bool    { return c.results }
func (c Config) ActiveID() string { return c.activeID }

// Roles returns a copy of the role names configured for cat.
func (c Config) Roles(cat types.Category) []string {
	return append([]string(nil), c.roles[cat]...)
}

// Configured reports whether cat was given a non-empty role list. The NUS
// category is never configured; its presence depends on the data.
func (c Config) Configured(cat types.Category) bool {
	if cat == types.NusDelegate {
		return false
	}
	return len(c.roles[cat]) > 0
}
