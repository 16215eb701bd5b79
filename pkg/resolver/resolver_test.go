package resolver

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysdevrun/transitchat/pkg/transit"
	"github.com/sysdevrun/transitchat/pkg/util"
)

// memoryStopSource matches name parts as substrings of normalized stop names,
// mirroring the behaviour of the database regex lookup.
type memoryStopSource struct {
	stops []transit.Stop
}

func (s *memoryStopSource) SearchStopsByName(ctx context.Context, namePart string, limit int64) ([]transit.Stop, error) {
	var matches []transit.Stop

	for _, stop := range s.stops {
		if strings.Contains(util.NormalizeText(stop.Name), namePart) {
			matches = append(matches, stop)
		}

		if int64(len(matches)) >= limit {
			break
		}
	}

	return matches, nil
}

func testSource() *memoryStopSource {
	return &memoryStopSource{stops: []transit.Stop{
		{ID: "1", Name: "Central Station"},
		{ID: "2", Name: "Central Park"},
		{ID: "3", Name: "North Station"},
		{ID: "4", Name: "Gare Généreux"},
		{ID: "5", Name: "Airport Terminal"},
	}}
}

func TestSearchStopsByWordsScoring(t *testing.T) {
	stopResolver := NewResolver(testSource())

	results, err := stopResolver.SearchStopsByWords(context.Background(), "central station", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Both words matched
	assert.Equal(t, "Central Station", results[0].Name)
	assert.Equal(t, 2, results[0].MatchScore)
	assert.ElementsMatch(t, []string{"central", "station"}, results[0].MatchedWords)

	// Single word matches, tie broken by name
	assert.Equal(t, "Central Park", results[1].Name)
	assert.Equal(t, 1, results[1].MatchScore)
	assert.Equal(t, "North Station", results[2].Name)
	assert.Equal(t, 1, results[2].MatchScore)
}

func TestSearchStopsByWordsDiacriticInsensitive(t *testing.T) {
	stopResolver := NewResolver(testSource())

	results, err := stopResolver.SearchStopsByWords(context.Background(), "gare genereux", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "Gare Généreux", results[0].Name)
	assert.Equal(t, 2, results[0].MatchScore)
}

func TestSearchStopsByWordsLimit(t *testing.T) {
	stopResolver := NewResolver(testSource())

	results, err := stopResolver.SearchStopsByWords(context.Background(), "central station", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Central Station", results[0].Name)
}

func TestSearchStopsByWordsEmptyQuery(t *testing.T) {
	stopResolver := NewResolver(testSource())

	for _, query := range []string{"", "   ", "a", "a b c"} {
		results, err := stopResolver.SearchStopsByWords(context.Background(), query, 10)
		require.NoError(t, err, query)
		assert.Empty(t, results, query)
	}
}

func TestSearchStopsByWordsDuplicateWords(t *testing.T) {
	stopResolver := NewResolver(testSource())

	results, err := stopResolver.SearchStopsByWords(context.Background(), "central central", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// A repeated query word must not inflate the score
	assert.Equal(t, 1, results[0].MatchScore)
}

func TestSearchStopsByWordsDeterministicOrder(t *testing.T) {
	// Stops that tie on score and name must still come back in a fixed
	// order, regardless of map iteration order during merging.
	source := &memoryStopSource{stops: []transit.Stop{
		{ID: "9", Name: "Riverside"},
		{ID: "3", Name: "Riverside"},
		{ID: "7", Name: "Riverside"},
	}}
	stopResolver := NewResolver(source)

	first, err := stopResolver.SearchStopsByWords(context.Background(), "riverside stop", 10)
	require.NoError(t, err)
	require.Len(t, first, 3)

	assert.Equal(t, "3", first[0].ID)
	assert.Equal(t, "7", first[1].ID)
	assert.Equal(t, "9", first[2].ID)

	for i := 0; i < 20; i++ {
		again, err := stopResolver.SearchStopsByWords(context.Background(), "riverside stop", 10)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSplitQueryWords(t *testing.T) {
	assert.Equal(t, []string{"central", "station"}, splitQueryWords("  Central   STATION "))
	assert.Equal(t, []string{"st", "pancras"}, splitQueryWords("St Pancras"))
	assert.Nil(t, splitQueryWords("a b"))
}
