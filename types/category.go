package types

import "strings"

// Category is one of the four top-level candidate groupings.
type Category int

const (
	StudentOfficers Category = iota
	NetworkOfficers
	NusDelegate
	Academic
)

// AllCategories lists every category in display order.
var AllCategories = []Category{StudentOfficers, NetworkOfficers, NusDelegate, Academic}

// NusDelegateRole is the fixed role name behind the NUS category.
const NusDelegateRole = "NUS National Conference Delegate"

// Code returns the short id used in tab ids and the active-tab setting.
func (c Category) Code() string {
	switch c {
	case StudentOfficers:
		return "SO"
	case NetworkOfficers:
		return "NO"
	case NusDelegate:
		return "NUS"
	case Academic:
		return "ACADEMIC"
	default:
		return ""
	}
}

// Title returns the human-readable category heading.
func (c Category) Title() string {
	switch c {
	case StudentOfficers:
		return "Student Officers"
	case NetworkOfficers:
		return "Network Officers"
	case NusDelegate:
		return "NUS Delegates"
	case Academic:
		return "Academic"
	default:
		return ""
	}
}

func (c Category) String() string {
	if code := c.Code(); code != "" {
		return code
	}
	return "unknown"
}

// Officer reports whether c groups officer roles matched by exact title.
func (c Category) Officer() bool {
	return c == StudentOfficers || c == NetworkOfficers
}

// ParseCategory maps a category code ("SO", "no", " Academic ") to a Category.
func ParseCategory(code string) (Category, bool) {
	v := strings.ToUpper(strings.TrimSpace(code))
	for _, c := range AllCategories {
		if c.Code() == v {
			return c, true
		}
	}
	return 0, false
}
