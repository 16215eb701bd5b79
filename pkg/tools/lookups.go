package tools

import (
	"context"
	"encoding/json"

	"github.com/sysdevrun/transitchat/pkg/transit"
	"github.com/sysdevrun/transitchat/pkg/transitdata"
)

// Backend is the slice of the transit data repository the lookup tools need.
type Backend interface {
	GetStops(ctx context.Context, filter transitdata.StopFilter) ([]transit.Stop, error)
	GetRoutes(ctx context.Context, filter transitdata.RouteFilter) ([]transit.Route, error)
	GetTrips(ctx context.Context, filter transitdata.TripFilter) ([]transit.Trip, error)
	GetStopTimes(ctx context.Context, filter transitdata.StopTimeFilter) ([]transit.StopTime, error)
	GetActiveServiceIDs(ctx context.Context, date string) ([]string, error)
}

// GetStopsTool is a thin pass-through to the backend stop lookup.
type GetStopsTool struct {
	Backend Backend
}

func (t *GetStopsTool) Name() string { return "getStops" }

func (t *GetStopsTool) Definition() llmTool {
	return llmToolDefinition(t.Name(),
		"Look up stops by ID, partial name or parent station. Returns at most `limit` stops (default 10).",
		map[string]schema{
			"stopId":        stringOrList("Stop ID or array of stop IDs"),
			"name":          {Type: "string", Description: "Partial stop name, case and accent insensitive"},
			"parentStation": {Type: "string", Description: "Return the child stops of this parent station"},
			"limit":         {Type: "integer", Description: "Maximum number of results (default 10)"},
		}, nil)
}

type getStopsInput struct {
	StopID        StringList `json:"stopId"`
	Name          string     `json:"name"`
	ParentStation string     `json:"parentStation"`
	Limit         int64      `json:"limit"`
}

func (t *GetStopsTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	var decoded getStopsInput
	if err := decodeInput(input, &decoded); err != nil {
		return nil, err
	}

	return t.Backend.GetStops(ctx, transitdata.StopFilter{
		IDs:           decoded.StopID,
		NamePart:      decoded.Name,
		ParentStation: decoded.ParentStation,
		Limit:         decoded.Limit,
	})
}

type GetRoutesTool struct {
	Backend Backend
}

func (t *GetRoutesTool) Name() string { return "getRoutes" }

func (t *GetRoutesTool) Definition() llmTool {
	return llmToolDefinition(t.Name(),
		"Look up routes by ID or partial name. Returns at most `limit` routes (default 10).",
		map[string]schema{
			"routeId": stringOrList("Route ID or array of route IDs"),
			"name":    {Type: "string", Description: "Partial route short or long name"},
			"limit":   {Type: "integer", Description: "Maximum number of results (default 10)"},
		}, nil)
}

type getRoutesInput struct {
	RouteID StringList `json:"routeId"`
	Name    string     `json:"name"`
	Limit   int64      `json:"limit"`
}

func (t *GetRoutesTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	var decoded getRoutesInput
	if err := decodeInput(input, &decoded); err != nil {
		return nil, err
	}

	return t.Backend.GetRoutes(ctx, transitdata.RouteFilter{
		IDs:      decoded.RouteID,
		NamePart: decoded.Name,
		Limit:    decoded.Limit,
	})
}

type GetTripsTool struct {
	Backend Backend
}

func (t *GetTripsTool) Name() string { return "getTrips" }

func (t *GetTripsTool) Definition() llmTool {
	return llmToolDefinition(t.Name(),
		"Look up trips by ID, route or service. When `date` (YYYYMMDD) is given it is resolved to the "+
			"service IDs active on that date; call getCurrentDateTime first to know today's date. "+
			"Returns at most `limit` trips (default 10).",
		map[string]schema{
			"tripId":    stringOrList("Trip ID or array of trip IDs"),
			"routeId":   stringOrList("Route ID or array of route IDs"),
			"serviceId": stringOrList("Service ID or array of service IDs"),
			"date":      {Type: "string", Description: "Service date YYYYMMDD, resolved to active service IDs"},
			"limit":     {Type: "integer", Description: "Maximum number of results (default 10)"},
		}, nil)
}

type getTripsInput struct {
	TripID    StringList `json:"tripId"`
	RouteID   StringList `json:"routeId"`
	ServiceID StringList `json:"serviceId"`
	Date      string     `json:"date" validate:"omitempty,len=8,numeric"`
	Limit     int64      `json:"limit"`
}

func (t *GetTripsTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	var decoded getTripsInput
	if err := decodeInput(input, &decoded); err != nil {
		return nil, err
	}

	serviceIDs := []string(decoded.ServiceID)

	if decoded.Date != "" && len(serviceIDs) == 0 {
		activeServiceIDs, err := t.Backend.GetActiveServiceIDs(ctx, decoded.Date)
		if err != nil {
			return nil, err
		}
		serviceIDs = activeServiceIDs
	}

	return t.Backend.GetTrips(ctx, transitdata.TripFilter{
		IDs:        decoded.TripID,
		RouteIDs:   decoded.RouteID,
		ServiceIDs: serviceIDs,
		Limit:      decoded.Limit,
	})
}

type GetStopTimesTool struct {
	Backend Backend
}

func (t *GetStopTimesTool) Name() string { return "getStopTimes" }

func (t *GetStopTimesTool) Definition() llmTool {
	return llmToolDefinition(t.Name(),
		"Look up stop times (scheduled calls) by trip or stop. When `date` (YYYYMMDD) is given, stop "+
			"times belonging to trips not running that date are filtered out. Times are seconds since "+
			"midnight. Returns at most `limit` entries (default 20).",
		map[string]schema{
			"tripId": stringOrList("Trip ID or array of trip IDs"),
			"stopId": stringOrList("Stop ID or array of stop IDs"),
			"date":   {Type: "string", Description: "Service date YYYYMMDD used to filter to active trips"},
			"limit":  {Type: "integer", Description: "Maximum number of results (default 20)"},
		}, nil)
}

type getStopTimesInput struct {
	TripID StringList `json:"tripId"`
	StopID StringList `json:"stopId"`
	Date   string     `json:"date" validate:"omitempty,len=8,numeric"`
	Limit  int64      `json:"limit"`
}

// dateFilterFetchLimit oversizes the backend query when a date filter will
// run afterwards, so inactive rows cannot crowd active ones out of the
// requested limit.
const dateFilterFetchLimit = 1000

func (t *GetStopTimesTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	var decoded getStopTimesInput
	if err := decodeInput(input, &decoded); err != nil {
		return nil, err
	}

	limit := decoded.Limit
	if limit <= 0 {
		limit = transitdata.DefaultStopTimesLimit
	}

	fetchLimit := limit
	if decoded.Date != "" {
		fetchLimit = dateFilterFetchLimit
	}

	stopTimes, err := t.Backend.GetStopTimes(ctx, transitdata.StopTimeFilter{
		TripIDs: decoded.TripID,
		StopIDs: decoded.StopID,
		Limit:   fetchLimit,
	})
	if err != nil {
		return nil, err
	}

	if decoded.Date == "" || len(stopTimes) == 0 {
		return stopTimes, nil
	}

	filtered, err := t.filterToActiveTrips(ctx, decoded.Date, stopTimes)
	if err != nil {
		return nil, err
	}

	if int64(len(filtered)) > limit {
		filtered = filtered[:limit]
	}

	return filtered, nil
}

// filterToActiveTrips drops stop times whose trip does not run on the date.
func (t *GetStopTimesTool) filterToActiveTrips(ctx context.Context, date string, stopTimes []transit.StopTime) ([]transit.StopTime, error) {
	serviceIDs, err := t.Backend.GetActiveServiceIDs(ctx, date)
	if err != nil {
		return nil, err
	}

	tripIDs := make([]string, 0, len(stopTimes))
	for _, stopTime := range stopTimes {
		tripIDs = append(tripIDs, stopTime.TripID)
	}

	activeTrips, err := t.Backend.GetTrips(ctx, transitdata.TripFilter{
		IDs:        tripIDs,
		ServiceIDs: serviceIDs,
		Limit:      int64(len(tripIDs)),
	})
	if err != nil {
		return nil, err
	}

	active := map[string]bool{}
	for _, trip := range activeTrips {
		active[trip.ID] = true
	}

	filtered := []transit.StopTime{}
	for _, stopTime := range stopTimes {
		if active[stopTime.TripID] {
			filtered = append(filtered, stopTime)
		}
	}

	return filtered, nil
}
