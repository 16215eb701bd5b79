// Package routing builds a per-date view of the transit network and finds
// low-transfer stop-to-stop paths through it, then binds those paths to real
// scheduled trips.
package routing

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/transit"
)

// ScheduleSource provides the slice of the dataset needed to assemble one
// service date's network.
type ScheduleSource interface {
	GetActiveServiceIDs(ctx context.Context, date string) ([]string, error)
	TripsForServices(ctx context.Context, serviceIDs []string) ([]transit.Trip, error)
	StopTimesForTrips(ctx context.Context, tripIDs []string) ([]transit.StopTime, error)
}

type edge struct {
	fromStopID string
	toStopID   string
	routeID    string
}

// Graph is the network for a single service date. Nodes are stops; an edge
// exists for every consecutive stop pair served by some active trip.
type Graph struct {
	Date string

	adjacency map[string][]edge

	tripRoute     map[string]string
	tripsByRoute  map[string][]string
	tripStopTimes map[string][]transit.StopTime
}

// BuildGraph assembles the graph for a date from the active trips' stop times.
func BuildGraph(ctx context.Context, source ScheduleSource, date string) (*Graph, error) {
	serviceIDs, err := source.GetActiveServiceIDs(ctx, date)
	if err != nil {
		return nil, err
	}

	trips, err := source.TripsForServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	graph := &Graph{
		Date:          date,
		adjacency:     map[string][]edge{},
		tripRoute:     map[string]string{},
		tripsByRoute:  map[string][]string{},
		tripStopTimes: map[string][]transit.StopTime{},
	}

	tripIDs := make([]string, 0, len(trips))
	for _, trip := range trips {
		tripIDs = append(tripIDs, trip.ID)
		graph.tripRoute[trip.ID] = trip.RouteID
		graph.tripsByRoute[trip.RouteID] = append(graph.tripsByRoute[trip.RouteID], trip.ID)
	}

	stopTimes, err := source.StopTimesForTrips(ctx, tripIDs)
	if err != nil {
		return nil, err
	}

	for _, stopTime := range stopTimes {
		graph.tripStopTimes[stopTime.TripID] = append(graph.tripStopTimes[stopTime.TripID], stopTime)
	}

	seenEdges := map[[3]string]bool{}
	for tripID, tripTimes := range graph.tripStopTimes {
		sort.Slice(tripTimes, func(a, b int) bool {
			return tripTimes[a].StopSequence < tripTimes[b].StopSequence
		})
		graph.tripStopTimes[tripID] = tripTimes

		routeID := graph.tripRoute[tripID]
		for index := 0; index+1 < len(tripTimes); index++ {
			key := [3]string{tripTimes[index].StopID, tripTimes[index+1].StopID, routeID}
			if seenEdges[key] {
				continue
			}
			seenEdges[key] = true

			graph.adjacency[tripTimes[index].StopID] = append(
				graph.adjacency[tripTimes[index].StopID],
				edge{fromStopID: tripTimes[index].StopID, toStopID: tripTimes[index+1].StopID, routeID: routeID},
			)
		}
	}

	log.Debug().
		Str("date", date).
		Int("services", len(serviceIDs)).
		Int("trips", len(trips)).
		Int("stops", len(graph.adjacency)).
		Msg("Built network graph")

	return graph, nil
}
