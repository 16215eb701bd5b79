package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysdevrun/transitchat/pkg/itinerary"
	"github.com/sysdevrun/transitchat/pkg/transit"
	"github.com/sysdevrun/transitchat/pkg/transitdata"
)

type fakeBackend struct {
	trips           []transit.Trip
	stopTimes       []transit.StopTime
	serviceIDs      []string
	serviceErr      error
	tripFilters     []transitdata.TripFilter
	stopTimeFilters []transitdata.StopTimeFilter
}

func (b *fakeBackend) GetStops(ctx context.Context, filter transitdata.StopFilter) ([]transit.Stop, error) {
	return nil, nil
}

func (b *fakeBackend) GetRoutes(ctx context.Context, filter transitdata.RouteFilter) ([]transit.Route, error) {
	return nil, nil
}

func (b *fakeBackend) GetTrips(ctx context.Context, filter transitdata.TripFilter) ([]transit.Trip, error) {
	b.tripFilters = append(b.tripFilters, filter)

	var matches []transit.Trip
	for _, trip := range b.trips {
		if len(filter.ServiceIDs) > 0 && !containsString(filter.ServiceIDs, trip.ServiceID) {
			continue
		}
		if len(filter.IDs) > 0 && !containsString(filter.IDs, trip.ID) {
			continue
		}
		matches = append(matches, trip)
	}

	return matches, nil
}

func (b *fakeBackend) GetStopTimes(ctx context.Context, filter transitdata.StopTimeFilter) ([]transit.StopTime, error) {
	b.stopTimeFilters = append(b.stopTimeFilters, filter)

	stopTimes := b.stopTimes
	if filter.Limit > 0 && int64(len(stopTimes)) > filter.Limit {
		stopTimes = stopTimes[:filter.Limit]
	}

	return stopTimes, nil
}

func (b *fakeBackend) GetActiveServiceIDs(ctx context.Context, date string) ([]string, error) {
	return b.serviceIDs, b.serviceErr
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func TestStringListDecoding(t *testing.T) {
	var single StringList
	require.NoError(t, json.Unmarshal([]byte(`"S1"`), &single))
	assert.Equal(t, StringList{"S1"}, single)

	var many StringList
	require.NoError(t, json.Unmarshal([]byte(`["S1","S2"]`), &many))
	assert.Equal(t, StringList{"S1", "S2"}, many)

	var invalid StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &invalid))
}

func TestDecodeInputValidation(t *testing.T) {
	var decoded searchStopsInput

	err := decodeInput(json.RawMessage(`{}`), &decoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Query")
	assert.Contains(t, err.Error(), "required")

	// Empty input is treated as an empty object, not a parse error
	var trips getTripsInput
	require.NoError(t, decodeInput(nil, &trips))

	err = decodeInput(json.RawMessage(`{"date":"next tuesday"}`), &trips)
	assert.Error(t, err)
}

func TestDispatchUnknownTool(t *testing.T) {
	registry := NewRegistry(&CurrentDateTime{})

	payload := registry.Dispatch(context.Background(), "launchRocket", nil)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Contains(t, decoded["error"], "launchRocket")
}

func TestDispatchToolError(t *testing.T) {
	backend := &fakeBackend{serviceErr: errors.New("database gone")}
	registry := NewRegistry(&GetTripsTool{Backend: backend})

	payload := registry.Dispatch(context.Background(), "getTrips", json.RawMessage(`{"date":"20260831"}`))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, "database gone", decoded["error"])
}

func TestRegistryDefinitionsKeepOrder(t *testing.T) {
	registry := NewRegistry(
		&CurrentDateTime{},
		&GetTripsTool{Backend: &fakeBackend{}},
		&SearchStopsTool{},
	)

	definitions := registry.Definitions()
	require.Len(t, definitions, 3)
	assert.Equal(t, "getCurrentDateTime", definitions[0].Name)
	assert.Equal(t, "getTrips", definitions[1].Name)
	assert.Equal(t, "searchStopsByWords", definitions[2].Name)
}

func TestCurrentDateTimePayload(t *testing.T) {
	tool := &CurrentDateTime{Now: func() time.Time {
		return time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC)
	}}

	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)

	payload := result.(currentDateTimePayload)
	assert.Equal(t, "2026-08-31", payload.Date)
	assert.Equal(t, "09:30:00", payload.Time)
	assert.Equal(t, "20260831", payload.DateNumeric)
	assert.Equal(t, "Monday", payload.Weekday)
}

func TestGetTripsResolvesDateToServices(t *testing.T) {
	backend := &fakeBackend{
		serviceIDs: []string{"WEEKDAY"},
		trips: []transit.Trip{
			{ID: "T1", ServiceID: "WEEKDAY"},
			{ID: "T2", ServiceID: "SUNDAY"},
		},
	}
	tool := &GetTripsTool{Backend: backend}

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"date":"20260831"}`))
	require.NoError(t, err)

	trips := result.([]transit.Trip)
	require.Len(t, trips, 1)
	assert.Equal(t, "T1", trips[0].ID)
}

func TestGetTripsExplicitServiceWinsOverDate(t *testing.T) {
	backend := &fakeBackend{
		serviceIDs: []string{"WEEKDAY"},
		trips: []transit.Trip{
			{ID: "T1", ServiceID: "WEEKDAY"},
			{ID: "T2", ServiceID: "SUNDAY"},
		},
	}
	tool := &GetTripsTool{Backend: backend}

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"date":"20260831","serviceId":"SUNDAY"}`))
	require.NoError(t, err)

	trips := result.([]transit.Trip)
	require.Len(t, trips, 1)
	assert.Equal(t, "T2", trips[0].ID)
}

func TestGetStopTimesFiltersToActiveTrips(t *testing.T) {
	backend := &fakeBackend{
		serviceIDs: []string{"WEEKDAY"},
		trips: []transit.Trip{
			{ID: "T1", ServiceID: "WEEKDAY"},
			{ID: "T2", ServiceID: "SUNDAY"},
		},
		stopTimes: []transit.StopTime{
			{TripID: "T1", StopID: "A", StopSequence: 1},
			{TripID: "T2", StopID: "A", StopSequence: 1},
		},
	}
	tool := &GetStopTimesTool{Backend: backend}

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"stopId":"A","date":"20260831"}`))
	require.NoError(t, err)

	stopTimes := result.([]transit.StopTime)
	require.Len(t, stopTimes, 1)
	assert.Equal(t, "T1", stopTimes[0].TripID)
}

func TestGetStopTimesWithoutDateKeepsAll(t *testing.T) {
	backend := &fakeBackend{
		stopTimes: []transit.StopTime{
			{TripID: "T1", StopID: "A", StopSequence: 1},
			{TripID: "T2", StopID: "A", StopSequence: 1},
		},
	}
	tool := &GetStopTimesTool{Backend: backend}

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"stopId":"A"}`))
	require.NoError(t, err)

	assert.Len(t, result.([]transit.StopTime), 2)
}

func TestGetStopTimesDateFilterLooksPastRequestedLimit(t *testing.T) {
	backend := &fakeBackend{
		serviceIDs: []string{"WEEKDAY"},
		trips: []transit.Trip{
			{ID: "T-ACTIVE", ServiceID: "WEEKDAY"},
			{ID: "T-SUNDAY", ServiceID: "SUNDAY"},
		},
	}
	// Enough inactive rows to fill the default limit before any active one
	for i := 0; i < 30; i++ {
		backend.stopTimes = append(backend.stopTimes, transit.StopTime{TripID: "T-SUNDAY", StopID: "A", StopSequence: i + 1})
	}
	backend.stopTimes = append(backend.stopTimes, transit.StopTime{TripID: "T-ACTIVE", StopID: "A", StopSequence: 1})

	tool := &GetStopTimesTool{Backend: backend}

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"stopId":"A","date":"20260831"}`))
	require.NoError(t, err)

	stopTimes := result.([]transit.StopTime)
	require.Len(t, stopTimes, 1)
	assert.Equal(t, "T-ACTIVE", stopTimes[0].TripID)

	require.Len(t, backend.stopTimeFilters, 1)
	assert.Equal(t, int64(dateFilterFetchLimit), backend.stopTimeFilters[0].Limit)
}

func TestGetStopTimesTruncatesAfterDateFilter(t *testing.T) {
	backend := &fakeBackend{
		serviceIDs: []string{"WEEKDAY"},
		trips:      []transit.Trip{{ID: "T1", ServiceID: "WEEKDAY"}},
		stopTimes: []transit.StopTime{
			{TripID: "T1", StopID: "A", StopSequence: 1},
			{TripID: "T1", StopID: "B", StopSequence: 2},
			{TripID: "T1", StopID: "C", StopSequence: 3},
		},
	}
	tool := &GetStopTimesTool{Backend: backend}

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"tripId":"T1","date":"20260831","limit":2}`))
	require.NoError(t, err)

	assert.Len(t, result.([]transit.StopTime), 2)
}

type recordingFinder struct {
	opts itinerary.Options
}

func (f *recordingFinder) FindItinerary(ctx context.Context, startStopID string, endStopID string, date string, departureTime string, opts itinerary.Options) (*itinerary.ItineraryResult, error) {
	f.opts = opts
	return &itinerary.ItineraryResult{}, nil
}

type recordingByNameFinder struct {
	opts itinerary.NameOptions
}

func (f *recordingByNameFinder) FindItineraryByName(ctx context.Context, startName string, endName string, date string, departureTime string, opts itinerary.NameOptions) (*itinerary.Result, error) {
	f.opts = opts
	return &itinerary.Result{Status: "success"}, nil
}

func TestFindItineraryDefaultsOmittedMaxTransfers(t *testing.T) {
	finder := &recordingFinder{}
	tool := &FindItineraryTool{Engine: finder}

	_, err := tool.Execute(context.Background(), json.RawMessage(
		`{"startStopId":"A","endStopId":"B","date":"20260831","departureTime":"09:00:00"}`))
	require.NoError(t, err)

	assert.Equal(t, 2, finder.opts.MaxTransfers)
}

func TestFindItineraryKeepsExplicitZeroTransfers(t *testing.T) {
	finder := &recordingFinder{}
	tool := &FindItineraryTool{Engine: finder}

	_, err := tool.Execute(context.Background(), json.RawMessage(
		`{"startStopId":"A","endStopId":"B","date":"20260831","departureTime":"09:00:00","maxTransfers":0}`))
	require.NoError(t, err)

	assert.Equal(t, 0, finder.opts.MaxTransfers)
}

func TestFindItineraryByNameDefaultsOmittedMaxTransfers(t *testing.T) {
	finder := &recordingByNameFinder{}
	tool := &FindItineraryByNameTool{ByName: finder}

	_, err := tool.Execute(context.Background(), json.RawMessage(
		`{"startName":"Alpha","endName":"Beta","date":"20260831","departureTime":"09:00"}`))
	require.NoError(t, err)
	assert.Equal(t, 2, finder.opts.MaxTransfers)

	_, err = tool.Execute(context.Background(), json.RawMessage(
		`{"startName":"Alpha","endName":"Beta","date":"20260831","departureTime":"09:00","maxTransfers":0}`))
	require.NoError(t, err)
	assert.Equal(t, 0, finder.opts.MaxTransfers)
}
