package loader

import (
	"strings"
	"testing"

	"github.com/qyinm/ballottui/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListing(t *testing.T) {
	body := `{
		"ElectionName": "Spring 2026",
		"Candidates": [
			{"FirstName": "Ada", "LastName": "Lovelace", "Post": {"Title": "President", "Id": 7}},
			{"Name": "Bo", "Post": "Women's Officer"},
			{"Name": "Cy", "Post": 12},
			{"Name": "Di"}
		]
	}`

	records, err := ParseListing(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Ada Lovelace", records[0].Name())
	assert.Equal(t, types.PostStructured, records[0].Post().Kind())
	assert.Equal(t, "President", records[0].PostTitle())

	assert.Equal(t, types.PostPlain, records[1].Post().Kind())
	assert.Equal(t, "Women's Officer", records[1].PostTitle())

	assert.Equal(t, types.PostMalformed, records[2].Post().Kind())
	assert.Equal(t, "", records[2].PostTitle())
	assert.Equal(t, types.PostMalformed, records[3].Post().Kind())
}

func TestParseListingMissingCandidates(t *testing.T) {
	records, err := ParseListing(strings.NewReader(`{"Other": 1}`))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestParseListingMalformedJSON(t *testing.T) {
	_, err := ParseListing(strings.NewReader(`{"Candidates": [`))
	assert.Error(t, err)
}

func TestParseResultsArray(t *testing.T) {
	body := `[{"Name": "Ada", "Post": "President", "Votes": 120, "Elected": true}, {"Name": "Bo", "Post": "President", "Votes": "80"}]`

	records, err := ParseResults(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, records, 2)

	votes, ok := records[0].Votes()
	assert.True(t, ok)
	assert.Equal(t, 120, votes)
	assert.True(t, records[0].Elected())

	votes, ok = records[1].Votes()
	assert.True(t, ok)
	assert.Equal(t, 80, votes)
	assert.False(t, records[1].Elected())
}

func TestParseResultsKeyedObject(t *testing.T) {
	body := `{
		"-Mb2": {"Name": "second", "Post": "X"},
		"-Ma9": {"Name": "first", "Post": "X"},
		"-Mc1": {"Name": "third", "Post": "Y"}
	}`

	records, err := ParseResults(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].Name())
	assert.Equal(t, "second", records[1].Name())
	assert.Equal(t, "third", records[2].Name())
}

func TestParseResultsShapes(t *testing.T) {
	for _, body := range []string{"", "null", "  []  "} {
		records, err := ParseResults(strings.NewReader(body))
		require.NoError(t, err, "body %q", body)
		assert.Empty(t, records)
	}

	_, err := ParseResults(strings.NewReader(`"nope"`))
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}
