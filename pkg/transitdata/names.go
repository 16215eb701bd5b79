package transitdata

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"github.com/sysdevrun/transitchat/pkg/transit"
	"github.com/sysdevrun/transitchat/pkg/util"
)

// NameSet maps internal identifiers onto the labels that may be shown to a
// user: stop names, route short names and trip headsigns.
type NameSet struct {
	StopNames       map[string]string
	RouteShortNames map[string]string
	TripHeadsigns   map[string]string
	TripRouteIDs    map[string]string
}

// ResolveNames batch resolves every referenced stop and trip in one go. The
// stop and trip lookups run concurrently; routes are resolved afterwards from
// the trips' route references.
func (r *Repository) ResolveNames(ctx context.Context, stopIDs []string, tripIDs []string) (*NameSet, error) {
	stopIDs = util.RemoveDuplicateStrings(stopIDs)
	tripIDs = util.RemoveDuplicateStrings(tripIDs)

	nameSet := &NameSet{
		StopNames:       map[string]string{},
		RouteShortNames: map[string]string{},
		TripHeadsigns:   map[string]string{},
		TripRouteIDs:    map[string]string{},
	}

	var stops []transit.Stop
	var trips []transit.Trip

	p := pool.New().WithErrors().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		if len(stopIDs) == 0 {
			return nil
		}

		var err error
		stops, err = r.GetStops(ctx, StopFilter{IDs: stopIDs, Limit: int64(len(stopIDs))})
		return err
	})

	p.Go(func(ctx context.Context) error {
		if len(tripIDs) == 0 {
			return nil
		}

		var err error
		trips, err = r.GetTrips(ctx, TripFilter{IDs: tripIDs, Limit: int64(len(tripIDs))})
		return err
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	for _, stop := range stops {
		nameSet.StopNames[stop.ID] = stop.Name
	}

	var routeIDs []string
	for _, trip := range trips {
		nameSet.TripHeadsigns[trip.ID] = trip.Headsign
		nameSet.TripRouteIDs[trip.ID] = trip.RouteID
		routeIDs = append(routeIDs, trip.RouteID)
	}
	routeIDs = util.RemoveDuplicateStrings(routeIDs)

	if len(routeIDs) > 0 {
		routes, err := r.GetRoutes(ctx, RouteFilter{IDs: routeIDs, Limit: int64(len(routeIDs))})
		if err != nil {
			return nil, err
		}

		for _, route := range routes {
			nameSet.RouteShortNames[route.ID] = route.ShortName
		}
	}

	return nameSet, nil
}
