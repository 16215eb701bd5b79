package itinerary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysdevrun/transitchat/pkg/routing"
	"github.com/sysdevrun/transitchat/pkg/transit"
)

// fakePlanner serves canned paths and one journey set per path route.
type fakePlanner struct {
	paths    []routing.Path
	journeys map[string][]transit.ScheduledJourney

	scheduledDepartures []int
}

func (p *fakePlanner) Paths(ctx context.Context, date string, fromStopID string, toStopID string, opts routing.PathOptions) ([]routing.Path, error) {
	return p.paths, nil
}

func (p *fakePlanner) Schedule(ctx context.Context, date string, path routing.Path, departureSeconds int, minTransferSeconds int, maxJourneys int) ([]transit.ScheduledJourney, error) {
	p.scheduledDepartures = append(p.scheduledDepartures, departureSeconds)

	return p.journeys[path.Segments[0].RouteID], nil
}

func journeyAt(departure int, arrival int) transit.ScheduledJourney {
	return transit.NewScheduledJourney([]transit.Leg{
		{FromStopID: "A", ToStopID: "B", TripID: "T", DepartureTime: departure, ArrivalTime: arrival},
	})
}

func TestFindItinerarySortsAcrossPaths(t *testing.T) {
	planner := &fakePlanner{
		paths: []routing.Path{
			{Segments: []routing.Segment{{FromStopID: "A", ToStopID: "B", RouteID: "R1"}}},
			{Segments: []routing.Segment{{FromStopID: "A", ToStopID: "B", RouteID: "R2"}}},
		},
		journeys: map[string][]transit.ScheduledJourney{
			"R1": {journeyAt(36000, 37000)},
			"R2": {journeyAt(33000, 35000), journeyAt(39000, 40000)},
		},
	}

	engine := NewEngine(planner)

	result, err := engine.FindItinerary(context.Background(), "A", "B", "20260831", "09:00:00", Options{})
	require.NoError(t, err)
	require.Len(t, result.Journeys, 3)

	assert.Equal(t, 33000, result.Journeys[0].DepartureTime)
	assert.Equal(t, 36000, result.Journeys[1].DepartureTime)
	assert.Equal(t, 39000, result.Journeys[2].DepartureTime)

	// 09:00:00 forwarded as seconds to every path binding
	assert.Equal(t, []int{32400, 32400}, planner.scheduledDepartures)
}

func TestFindItineraryTruncates(t *testing.T) {
	planner := &fakePlanner{
		paths: []routing.Path{
			{Segments: []routing.Segment{{FromStopID: "A", ToStopID: "B", RouteID: "R1"}}},
		},
		journeys: map[string][]transit.ScheduledJourney{
			"R1": {journeyAt(1, 2), journeyAt(3, 4), journeyAt(5, 6)},
		},
	}

	engine := NewEngine(planner)

	result, err := engine.FindItinerary(context.Background(), "A", "B", "20260831", "00:00:00", Options{JourneysCount: 2})
	require.NoError(t, err)
	require.Len(t, result.Journeys, 2)
	assert.Equal(t, 1, result.Journeys[0].DepartureTime)
}

func TestFindItineraryNoPaths(t *testing.T) {
	engine := NewEngine(&fakePlanner{})

	result, err := engine.FindItinerary(context.Background(), "A", "B", "20260831", "09:00:00", Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Journeys)
	assert.Empty(t, result.Paths)
	assert.NotNil(t, result.Journeys)
}

func TestFindItineraryInvalidTime(t *testing.T) {
	engine := NewEngine(&fakePlanner{})

	_, err := engine.FindItinerary(context.Background(), "A", "B", "20260831", "quarter past", Options{})
	assert.Error(t, err)
}
