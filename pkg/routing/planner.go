package routing

import (
	"context"
	"sort"
	"sync"

	"github.com/sysdevrun/transitchat/pkg/transit"
)

// Planner is the routing primitive consumed by the itinerary engine. Paths
// enumerates structurally distinct routes; Schedule binds one of them to
// concrete trips departing no earlier than the given time.
type Planner interface {
	Paths(ctx context.Context, date string, fromStopID string, toStopID string, opts PathOptions) ([]Path, error)
	Schedule(ctx context.Context, date string, path Path, departureSeconds int, minTransferSeconds int, maxJourneys int) ([]transit.ScheduledJourney, error)
}

// NetworkPlanner is the dataset-backed Planner. Graphs are built lazily and
// kept per service date.
type NetworkPlanner struct {
	Source ScheduleSource

	mutex  sync.Mutex
	graphs map[string]*Graph
}

func NewNetworkPlanner(source ScheduleSource) *NetworkPlanner {
	return &NetworkPlanner{
		Source: source,
		graphs: map[string]*Graph{},
	}
}

func (p *NetworkPlanner) graphForDate(ctx context.Context, date string) (*Graph, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if graph, exists := p.graphs[date]; exists {
		return graph, nil
	}

	graph, err := BuildGraph(ctx, p.Source, date)
	if err != nil {
		return nil, err
	}

	p.graphs[date] = graph
	return graph, nil
}

func (p *NetworkPlanner) Paths(ctx context.Context, date string, fromStopID string, toStopID string, opts PathOptions) ([]Path, error) {
	graph, err := p.graphForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return graph.FindAllPaths(fromStopID, toStopID, opts), nil
}

func (p *NetworkPlanner) Schedule(ctx context.Context, date string, path Path, departureSeconds int, minTransferSeconds int, maxJourneys int) ([]transit.ScheduledJourney, error) {
	graph, err := p.graphForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return graph.schedulePath(path, departureSeconds, minTransferSeconds, maxJourneys), nil
}

// ride is one concrete trip serving a path segment.
type ride struct {
	tripID    string
	departure int
	arrival   int
}

// segmentRides finds every trip on the segment's route that calls at the
// boarding stop (with pickup allowed) no earlier than `earliest` and later
// reaches the alighting stop (with drop off allowed).
func (g *Graph) segmentRides(segment Segment, earliest int) []ride {
	var rides []ride

	for _, tripID := range g.tripsByRoute[segment.RouteID] {
		tripTimes := g.tripStopTimes[tripID]

		for boardIndex, boardCall := range tripTimes {
			if boardCall.StopID != segment.FromStopID || boardCall.PickupType == 1 {
				continue
			}
			if boardCall.DepartureTime < earliest {
				continue
			}

			for _, alightCall := range tripTimes[boardIndex+1:] {
				if alightCall.StopID == segment.ToStopID && alightCall.DropOffType != 1 {
					rides = append(rides, ride{
						tripID:    tripID,
						departure: boardCall.DepartureTime,
						arrival:   alightCall.ArrivalTime,
					})
					break
				}
			}
			break
		}
	}

	sort.Slice(rides, func(a, b int) bool {
		return rides[a].departure < rides[b].departure
	})

	return rides
}

// schedulePath turns one path into up to maxJourneys concrete journeys: every
// feasible first-leg departure is chained with the earliest onward trips that
// honour the minimum transfer dwell. Infeasible departures are dropped; zero
// feasible combinations is a valid outcome.
func (g *Graph) schedulePath(path Path, departureSeconds int, minTransferSeconds int, maxJourneys int) []transit.ScheduledJourney {
	if len(path.Segments) == 0 {
		return nil
	}

	var journeys []transit.ScheduledJourney

	firstRides := g.segmentRides(path.Segments[0], departureSeconds)
	if maxJourneys > 0 && len(firstRides) > maxJourneys {
		firstRides = firstRides[:maxJourneys]
	}

	for _, firstRide := range firstRides {
		legs := []transit.Leg{{
			FromStopID:    path.Segments[0].FromStopID,
			ToStopID:      path.Segments[0].ToStopID,
			RouteID:       path.Segments[0].RouteID,
			TripID:        firstRide.tripID,
			DepartureTime: firstRide.departure,
			ArrivalTime:   firstRide.arrival,
		}}

		feasible := true
		cursor := firstRide.arrival

		for _, segment := range path.Segments[1:] {
			onwardRides := g.segmentRides(segment, cursor+minTransferSeconds)
			if len(onwardRides) == 0 {
				feasible = false
				break
			}

			next := onwardRides[0]
			legs = append(legs, transit.Leg{
				FromStopID:    segment.FromStopID,
				ToStopID:      segment.ToStopID,
				RouteID:       segment.RouteID,
				TripID:        next.tripID,
				DepartureTime: next.departure,
				ArrivalTime:   next.arrival,
				IsTransfer:    true,
			})
			cursor = next.arrival
		}

		if feasible {
			journeys = append(journeys, transit.NewScheduledJourney(legs))
		}
	}

	return journeys
}
