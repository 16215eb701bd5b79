// Package itinerary computes concrete journeys between stops and, through the
// by-name orchestrator, between free text place names.
package itinerary

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/routing"
	"github.com/sysdevrun/transitchat/pkg/transit"
)

type Options struct {
	MaxPaths                   int
	MaxTransfers               int
	MinTransferDurationSeconds int
	JourneysCount              int
}

const (
	defaultMaxPaths            = 5
	defaultMaxTransfers        = 2
	defaultMinTransferDuration = 120
	defaultJourneysCount       = 3
)

func (o Options) withDefaults() Options {
	if o.MaxPaths <= 0 {
		o.MaxPaths = defaultMaxPaths
	}
	if o.MaxTransfers < 0 {
		o.MaxTransfers = defaultMaxTransfers
	}
	if o.MinTransferDurationSeconds <= 0 {
		o.MinTransferDurationSeconds = defaultMinTransferDuration
	}
	if o.JourneysCount <= 0 {
		o.JourneysCount = defaultJourneysCount
	}

	return o
}

// ItineraryResult carries the scheduled journeys plus the structural paths
// they were derived from. Both empty means no route exists - that is not an
// error here; the caller decides how to surface it.
type ItineraryResult struct {
	Journeys []transit.ScheduledJourney `json:"journeys"`
	Paths    []routing.Path             `json:"paths"`
}

type Engine struct {
	Planner routing.Planner
}

func NewEngine(planner routing.Planner) *Engine {
	return &Engine{Planner: planner}
}

// FindItinerary asks the planner for candidate paths on the date and binds
// each to the timetable from the requested departure time onwards. Journeys
// are aggregated across paths, sorted by departure and truncated.
func (e *Engine) FindItinerary(ctx context.Context, startStopID string, endStopID string, date string, departureTime string, opts Options) (*ItineraryResult, error) {
	opts = opts.withDefaults()

	departureSeconds, err := transit.ParseTimeOfDay(departureTime)
	if err != nil {
		return nil, err
	}

	paths, err := e.Planner.Paths(ctx, date, startStopID, endStopID, routing.PathOptions{
		MaxPaths:     opts.MaxPaths,
		MaxTransfers: opts.MaxTransfers,
	})
	if err != nil {
		return nil, err
	}

	result := &ItineraryResult{
		Journeys: []transit.ScheduledJourney{},
		Paths:    paths,
	}

	if len(paths) == 0 {
		result.Paths = []routing.Path{}
		return result, nil
	}

	for _, path := range paths {
		journeys, err := e.Planner.Schedule(ctx, date, path, departureSeconds, opts.MinTransferDurationSeconds, opts.JourneysCount)
		if err != nil {
			return nil, err
		}

		result.Journeys = append(result.Journeys, journeys...)
	}

	sort.SliceStable(result.Journeys, func(a, b int) bool {
		return result.Journeys[a].DepartureTime < result.Journeys[b].DepartureTime
	})

	if len(result.Journeys) > opts.JourneysCount {
		result.Journeys = result.Journeys[:opts.JourneysCount]
	}

	log.Debug().
		Str("start", startStopID).
		Str("end", endStopID).
		Str("date", date).
		Int("paths", len(paths)).
		Int("journeys", len(result.Journeys)).
		Msg("Itinerary computed")

	return result, nil
}
