package itinerary

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/sysdevrun/transitchat/pkg/transit"
)

// PresentedStop only ever exposes the rider facing stop name; internal stop
// IDs never appear in a successful response.
type PresentedStop struct {
	Name string `json:"stop_name" groups:"basic"`
}

type PresentedLeg struct {
	FromStop PresentedStop `json:"fromStop" groups:"basic"`
	ToStop   PresentedStop `json:"toStop" groups:"basic"`

	Route        string `json:"route,omitempty" groups:"basic"`
	TripHeadsign string `json:"tripHeadsign,omitempty" groups:"basic"`

	DepartureTime string `json:"departureTime" groups:"basic"`
	ArrivalTime   string `json:"arrivalTime" groups:"basic"`

	IsTransfer bool `json:"isTransfer" groups:"basic"`
}

type PresentedJourney struct {
	Legs []PresentedLeg `json:"legs" groups:"basic"`

	DepartureTime string `json:"departureTime" groups:"basic"`
	ArrivalTime   string `json:"arrivalTime" groups:"basic"`

	TotalDurationSeconds int `json:"totalDurationSeconds" groups:"basic"`
	Transfers            int `json:"transfers" groups:"basic"`
}

// presentJourneys batch resolves every stop and trip referenced by any leg and
// rebuilds the journeys with names, route short names, trip headsigns and
// HH:MM:SS times.
func (b *ByName) presentJourneys(ctx context.Context, journeys []transit.ScheduledJourney) ([]PresentedJourney, error) {
	var stopIDs []string
	var tripIDs []string

	for _, journey := range journeys {
		for _, leg := range journey.Legs {
			stopIDs = append(stopIDs, leg.FromStopID, leg.ToStopID)
			if leg.TripID != "" {
				tripIDs = append(tripIDs, leg.TripID)
			}
		}
	}

	names, err := b.Names.ResolveNames(ctx, stopIDs, tripIDs)
	if err != nil {
		return nil, err
	}

	presented := make([]PresentedJourney, 0, len(journeys))

	for _, journey := range journeys {
		presentedJourney := PresentedJourney{
			DepartureTime:        transit.FormatTimeOfDay(journey.DepartureTime),
			ArrivalTime:          transit.FormatTimeOfDay(journey.ArrivalTime),
			TotalDurationSeconds: journey.TotalDuration,
			Transfers:            journey.Transfers,
		}

		for _, leg := range journey.Legs {
			presentedLeg := PresentedLeg{
				FromStop:      PresentedStop{Name: stopLabel(names.StopNames, leg.FromStopID)},
				ToStop:        PresentedStop{Name: stopLabel(names.StopNames, leg.ToStopID)},
				DepartureTime: transit.FormatTimeOfDay(leg.DepartureTime),
				ArrivalTime:   transit.FormatTimeOfDay(leg.ArrivalTime),
				IsTransfer:    leg.IsTransfer,
			}

			if leg.TripID != "" {
				presentedLeg.TripHeadsign = names.TripHeadsigns[leg.TripID]

				if routeID := names.TripRouteIDs[leg.TripID]; routeID != "" {
					presentedLeg.Route = names.RouteShortNames[routeID]
				}
			}

			presentedJourney.Legs = append(presentedJourney.Legs, presentedLeg)
		}

		presented = append(presented, presentedJourney)
	}

	return presented, nil
}

// stopLabel falls back to the generic label rather than leaking an internal
// identifier when a stop cannot be resolved.
func stopLabel(stopNames map[string]string, stopID string) string {
	if name, exists := stopNames[stopID]; exists && name != "" {
		return name
	}

	return "Unknown stop"
}

func presentSelectedStop(selected transit.ScoredStop, candidates []transit.ScoredStop) *SelectedStop {
	selectedStop := &SelectedStop{}
	copier.Copy(selectedStop, &selected)

	for _, candidate := range candidates {
		if candidate.ID == selected.ID {
			continue
		}

		selectedStop.Alternatives = append(selectedStop.Alternatives, candidate.Name)
		if len(selectedStop.Alternatives) == alternativeStopCount {
			break
		}
	}

	return selectedStop
}
