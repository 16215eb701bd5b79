package itinerary

import (
	"context"
	"fmt"
	"strings"

	"github.com/sysdevrun/transitchat/pkg/transit"
	"github.com/sysdevrun/transitchat/pkg/transitdata"
	"github.com/sysdevrun/transitchat/pkg/util"
)

// Policy constants for name resolution. The ambiguity threshold mirrors user
// expectations, not a tuned value; keep it in one place.
const (
	resolveCandidates    = 10
	ambiguityThreshold   = 3
	disambiguationHints  = 5
	alternativeStopCount = 3
)

type StopSearcher interface {
	SearchStopsByWords(ctx context.Context, query string, limit int) ([]transit.ScoredStop, error)
}

type NameResolver interface {
	ResolveNames(ctx context.Context, stopIDs []string, tripIDs []string) (*transitdata.NameSet, error)
}

type ItineraryFinder interface {
	FindItinerary(ctx context.Context, startStopID string, endStopID string, date string, departureTime string, opts Options) (*ItineraryResult, error)
}

// ByName resolves two free text place names to stops, runs the itinerary
// engine between them and renders the outcome with human readable labels.
type ByName struct {
	Stops  StopSearcher
	Engine ItineraryFinder
	Names  NameResolver
}

func NewByName(stops StopSearcher, engine ItineraryFinder, names NameResolver) *ByName {
	return &ByName{Stops: stops, Engine: engine, Names: names}
}

type NameOptions struct {
	MaxTransfers               int
	MinTransferDurationSeconds int
	JourneysCount              int
}

// FindItineraryByName validates inputs, resolves both names, guards against
// ambiguity and same-stop requests, and either returns presented journeys or
// a structured error the caller can branch on. Every failure here is data;
// a non-nil Go error only means the backend itself misbehaved.
func (b *ByName) FindItineraryByName(ctx context.Context, startName string, endName string, date string, departureTime string, opts NameOptions) (*Result, error) {
	if !transit.ValidDate(date) {
		return errorResult(ErrorInvalidDateTime, fmt.Sprintf("Invalid date %q, expected YYYYMMDD", date)), nil
	}

	normalizedTime, ok := normalizeDepartureTime(departureTime)
	if !ok {
		return errorResult(ErrorInvalidDateTime, fmt.Sprintf("Invalid departure time %q, expected HH:MM or HH:MM:SS", departureTime)), nil
	}

	startCandidates, err := b.Stops.SearchStopsByWords(ctx, startName, resolveCandidates)
	if err != nil {
		return nil, err
	}
	endCandidates, err := b.Stops.SearchStopsByWords(ctx, endName, resolveCandidates)
	if err != nil {
		return nil, err
	}

	switch {
	case len(startCandidates) == 0 && len(endCandidates) == 0:
		return errorResult(ErrorBothStopsNotFound,
			fmt.Sprintf("No stops found matching %q or %q", startName, endName)), nil
	case len(startCandidates) == 0:
		return errorResult(ErrorStartStopNotFound,
			fmt.Sprintf("No stop found matching %q", startName)), nil
	case len(endCandidates) == 0:
		return errorResult(ErrorEndStopNotFound,
			fmt.Sprintf("No stop found matching %q", endName)), nil
	}

	startStop, ambiguous := selectCandidate(startName, startCandidates)
	if ambiguous != nil {
		result := errorResult(ErrorAmbiguousStartStop,
			fmt.Sprintf("Several stops match %q equally well, please be more specific", startName))
		result.Candidates = ambiguous
		return result, nil
	}

	endStop, ambiguous := selectCandidate(endName, endCandidates)
	if ambiguous != nil {
		result := errorResult(ErrorAmbiguousEndStop,
			fmt.Sprintf("Several stops match %q equally well, please be more specific", endName))
		result.Candidates = ambiguous
		return result, nil
	}

	if startStop.ID == endStop.ID {
		return errorResult(ErrorSameStartAndEnd,
			fmt.Sprintf("Both names resolve to the same stop %q", startStop.Name)), nil
	}

	found, err := b.Engine.FindItinerary(ctx, startStop.ID, endStop.ID, date, normalizedTime, Options{
		MaxTransfers:               opts.MaxTransfers,
		MinTransferDurationSeconds: opts.MinTransferDurationSeconds,
		JourneysCount:              opts.JourneysCount,
	})
	if err != nil {
		return nil, err
	}

	formattedDate := formatDate(date)

	if len(found.Journeys) == 0 {
		result := errorResult(ErrorNoItineraryFound,
			fmt.Sprintf("No itinerary found from %q to %q on %s", startStop.Name, endStop.Name, formattedDate))
		result.Hints = []string{
			"Try an earlier departure time",
			"Try a different date",
			"Allow more transfers",
		}
		return result, nil
	}

	journeys, err := b.presentJourneys(ctx, found.Journeys)
	if err != nil {
		return nil, err
	}

	return &Result{
		Status:        "success",
		Date:          formattedDate,
		DepartureTime: normalizedTime,
		StartStop:     presentSelectedStop(startStop, startCandidates),
		EndStop:       presentSelectedStop(endStop, endCandidates),
		Journeys:      journeys,
	}, nil
}

// normalizeDepartureTime accepts HH:MM or HH:MM:SS and always returns the
// 8 character form, padding missing seconds with :00.
func normalizeDepartureTime(value string) (string, bool) {
	if len(value) == 5 {
		value += ":00"
	}

	seconds, err := transit.ParseTimeOfDay(value)
	if err != nil || len(value) != 8 {
		return "", false
	}

	return transit.FormatTimeOfDay(seconds), true
}

// selectCandidate picks the winning stop for one side, or reports ambiguity:
// at least ambiguityThreshold candidates tied on the top score with none of
// them matching the query exactly. An exact (case and whitespace insensitive)
// name match always resolves the tie silently.
func selectCandidate(query string, candidates []transit.ScoredStop) (transit.ScoredStop, []string) {
	topScore := candidates[0].MatchScore

	var tied []transit.ScoredStop
	for _, candidate := range candidates {
		if candidate.MatchScore == topScore {
			tied = append(tied, candidate)
		}
	}

	for _, candidate := range tied {
		if equalNames(candidate.Name, query) {
			return candidate, nil
		}
	}

	if len(tied) >= ambiguityThreshold {
		var names []string
		for _, candidate := range tied {
			names = append(names, candidate.Name)
			if len(names) == disambiguationHints {
				break
			}
		}

		return transit.ScoredStop{}, names
	}

	return candidates[0], nil
}

func equalNames(a string, b string) bool {
	collapse := func(s string) string {
		return strings.Join(strings.Fields(util.NormalizeText(s)), " ")
	}

	return collapse(a) == collapse(b)
}

func formatDate(date string) string {
	day, err := transit.ParseDate(date)
	if err != nil {
		return date
	}

	return day.Format("Monday 2 January 2006")
}
