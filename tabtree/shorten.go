package tabtree

import (
	"strings"

	"github.com/qyinm/ballottui/types"
)

type shortenRule struct {
	match func(title string) bool
	label string
}

func contains(sub string) func(string) bool {
	return func(title string) bool { return strings.Contains(title, sub) }
}

func containsAll(subs ...string) func(string) bool {
	return func(title string) bool {
		for _, s := range subs {
			if !strings.Contains(title, s) {
				return false
			}
		}
		return true
	}
}

func containsAny(subs ...string) func(string) bool {
	return func(title string) bool {
		for _, s := range subs {
			if strings.Contains(title, s) {
				return true
			}
		}
		return false
	}
}

// Evaluated top to bottom; the first match wins.
var officerRules = map[types.Category][]shortenRule{
	types.StudentOfficers: {
		{contains("Welfare"), "VP Welfare & Community"},
		{contains("Health"), "VP Education (Health)"},
		{contains("Postgraduate"), "VP Postgraduate"},
		{contains("Arts"), "VP Education (Arts & Sciences)"},
		{contains("Activities"), "VP Activities & Development"},
		{contains("President"), "President"},
	},
	types.NetworkOfficers: {
		{contains("Generation"), "First Generation"},
		{contains("International"), "International"},
		{contains("People of Colour"), "People of Colour"},
		{contains("Women"), "Women's"},
		{containsAny("Family", "Parents"), "Family"},
		{contains("Disabled"), "Disabled"},
		{contains("Mature"), "Mature"},
		{containsAll("LGBT+", "open"), "LGBT+ (open)"},
		{containsAll("LGBT+", "trans"), "LGBT+ (trans)"},
		{contains("LGBT+"), "LGBT+"},
	},
}

// Shorten maps a role title to its tab label. Officer titles go through the
// rule table and pass through unchanged when nothing matches. Academic group
// names double as their labels. For any other category the title is returned
// as is with ok=false.
func Shorten(title string, cat types.Category) (label string, ok bool) {
	switch cat {
	case types.StudentOfficers, types.NetworkOfficers:
		for _, r := range officerRules[cat] {
			if r.match(title) {
				return r.label, true
			}
		}
		return title, true
	case types.Academic:
		return title, true
	default:
		return title, false
	}
}
