// Package resolver turns free text place names into ranked candidate stops.
package resolver

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sysdevrun/transitchat/pkg/transit"
	"github.com/sysdevrun/transitchat/pkg/util"
	"golang.org/x/exp/maps"
)

// StopSource is the backend lookup the resolver runs against. Matching must be
// case and diacritic insensitive.
type StopSource interface {
	SearchStopsByName(ctx context.Context, namePart string, limit int64) ([]transit.Stop, error)
}

// perWordLimit bounds the cost of a single word lookup; a generous cap rather
// than a ranking decision.
const perWordLimit = 100

type Resolver struct {
	Stops StopSource
}

func NewResolver(stops StopSource) *Resolver {
	return &Resolver{Stops: stops}
}

// SearchStopsByWords splits the query into words, looks each word up as a
// substring of stop names and merges the results per stop. A stop's score is
// the number of distinct query words that matched it; equal scores are ordered
// by stop name. An empty or too-short query yields an empty result, not an
// error.
func (r *Resolver) SearchStopsByWords(ctx context.Context, query string, limit int) ([]transit.ScoredStop, error) {
	words := splitQueryWords(query)
	if len(words) == 0 {
		return []transit.ScoredStop{}, nil
	}

	scored := map[string]*transit.ScoredStop{}

	for _, word := range words {
		stops, err := r.Stops.SearchStopsByName(ctx, word, perWordLimit)
		if err != nil {
			return nil, err
		}

		for _, stop := range stops {
			entry, exists := scored[stop.ID]
			if !exists {
				entry = &transit.ScoredStop{Stop: stop}
				scored[stop.ID] = entry
			}

			if !containsWord(entry.MatchedWords, word) {
				entry.MatchedWords = append(entry.MatchedWords, word)
				entry.MatchScore++
			}
		}
	}

	results := make([]transit.ScoredStop, 0, len(scored))
	for _, entry := range maps.Values(scored) {
		results = append(results, *entry)
	}

	// Stable with a full tiebreak chain so identical queries always rank
	// identically, even though the merge map iterates in random order.
	sort.SliceStable(results, func(a, b int) bool {
		if results[a].MatchScore != results[b].MatchScore {
			return results[a].MatchScore > results[b].MatchScore
		}
		if results[a].Name != results[b].Name {
			return results[a].Name < results[b].Name
		}

		return results[a].ID < results[b].ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// splitQueryWords normalizes the query and drops words shorter than 2 runes.
func splitQueryWords(query string) []string {
	var words []string

	for _, word := range strings.Fields(util.NormalizeText(query)) {
		if utf8.RuneCountInString(word) < 2 {
			continue
		}

		if !containsWord(words, word) {
			words = append(words, word)
		}
	}

	return words
}

func containsWord(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}

	return false
}
