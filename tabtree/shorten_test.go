package tabtree

import (
	"testing"

	"github.com/qyinm/ballottui/types"
	"github.com/stretchr/testify/assert"
)

func TestShorten(t *testing.T) {
	tests := []struct {
		title string
		cat   types.Category
		want  string
	}{
		{"VP Education and Welfare", types.StudentOfficers, "VP Welfare & Community"},
		{"VP Education (Health Sciences)", types.StudentOfficers, "VP Education (Health)"},
		{"VP Postgraduate Education", types.StudentOfficers, "VP Postgraduate"},
		{"VP Education (Arts and Humanities)", types.StudentOfficers, "VP Education (Arts & Sciences)"},
		{"VP Activities and Engagement", types.StudentOfficers, "VP Activities & Development"},
		{"Union President", types.StudentOfficers, "President"},
		{"Democracy Officer", types.StudentOfficers, "Democracy Officer"},

		{"First Generation Students' Officer", types.NetworkOfficers, "First Generation"},
		{"International Students' Officer", types.NetworkOfficers, "International"},
		{"People of Colour Officer", types.NetworkOfficers, "People of Colour"},
		{"Women's Officer", types.NetworkOfficers, "Women's"},
		{"Student Parents Officer", types.NetworkOfficers, "Family"},
		{"Family Officer", types.NetworkOfficers, "Family"},
		{"Disabled Students' Officer", types.NetworkOfficers, "Disabled"},
		{"Mature Students' Officer", types.NetworkOfficers, "Mature"},
		{"LGBT+ Officer (open)", types.NetworkOfficers, "LGBT+ (open)"},
		{"LGBT+ Officer (trans)", types.NetworkOfficers, "LGBT+ (trans)"},
		{"LGBT+ Officer", types.NetworkOfficers, "LGBT+"},
		{"Environment Officer", types.NetworkOfficers, "Environment Officer"},

		{"Bioscience", types.Academic, "Bioscience"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := Shorten(tt.title, tt.cat)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortenFirstRuleWins(t *testing.T) {
	// Matches both the Welfare and the President rules.
	got, _ := Shorten("President for Welfare", types.StudentOfficers)
	assert.Equal(t, "VP Welfare & Community", got)

	// International women: International is listed before Women.
	got, _ = Shorten("International Women's Officer", types.NetworkOfficers)
	assert.Equal(t, "International", got)
}

func TestShortenOtherCategories(t *testing.T) {
	for _, cat := range []types.Category{types.NusDelegate, types.Category(42)} {
		got, ok := Shorten("NUS National Conference Delegate", cat)
		assert.False(t, ok)
		assert.Equal(t, "NUS National Conference Delegate", got)
	}
}
