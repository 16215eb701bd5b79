package tools

import (
	"context"
	"encoding/json"

	"github.com/sysdevrun/transitchat/pkg/itinerary"
)

// FindItineraryTool computes journeys between two already-resolved stop IDs.
type FindItineraryTool struct {
	Engine itinerary.ItineraryFinder
}

func (t *FindItineraryTool) Name() string { return "findItinerary" }

func (t *FindItineraryTool) Definition() llmTool {
	return llmToolDefinition(t.Name(),
		"Compute journeys between two stop IDs for a date (YYYYMMDD) and departure time (HH:MM:SS). "+
			"Prefer findItineraryByName when you only have place names. Call getCurrentDateTime first "+
			"when the user says 'today' or 'tomorrow'.",
		map[string]schema{
			"startStopId":                {Type: "string", Description: "Origin stop ID"},
			"endStopId":                  {Type: "string", Description: "Destination stop ID"},
			"date":                       {Type: "string", Description: "Service date YYYYMMDD"},
			"departureTime":              {Type: "string", Description: "Earliest departure HH:MM:SS"},
			"maxPaths":                   {Type: "integer", Description: "Maximum distinct paths to consider (default 5)"},
			"maxTransfers":               {Type: "integer", Description: "Maximum transfers allowed (default 2)"},
			"minTransferDurationSeconds": {Type: "integer", Description: "Minimum dwell between legs (default 120)"},
			"journeysCount":              {Type: "integer", Description: "Maximum journeys returned (default 3)"},
		}, []string{"startStopId", "endStopId", "date", "departureTime"})
}

// defaultMaxTransfers is applied when the model omits maxTransfers entirely.
// An explicit 0 still means "direct journeys only", so absence has to be
// detected before the zero value can swallow it.
const defaultMaxTransfers = 2

func maxTransfersOrDefault(value *int) int {
	if value == nil {
		return defaultMaxTransfers
	}

	return *value
}

type findItineraryInput struct {
	StartStopID                string `json:"startStopId" validate:"required"`
	EndStopID                  string `json:"endStopId" validate:"required"`
	Date                       string `json:"date" validate:"required,len=8,numeric"`
	DepartureTime              string `json:"departureTime" validate:"required"`
	MaxPaths                   int    `json:"maxPaths"`
	MaxTransfers               *int   `json:"maxTransfers"`
	MinTransferDurationSeconds int    `json:"minTransferDurationSeconds"`
	JourneysCount              int    `json:"journeysCount"`
}

func (t *FindItineraryTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	var decoded findItineraryInput
	if err := decodeInput(input, &decoded); err != nil {
		return nil, err
	}

	return t.Engine.FindItinerary(ctx, decoded.StartStopID, decoded.EndStopID, decoded.Date, decoded.DepartureTime, itinerary.Options{
		MaxPaths:                   decoded.MaxPaths,
		MaxTransfers:               maxTransfersOrDefault(decoded.MaxTransfers),
		MinTransferDurationSeconds: decoded.MinTransferDurationSeconds,
		JourneysCount:              decoded.JourneysCount,
	})
}

type ByNameFinder interface {
	FindItineraryByName(ctx context.Context, startName string, endName string, date string, departureTime string, opts itinerary.NameOptions) (*itinerary.Result, error)
}

// FindItineraryByNameTool is the high level journey tool working directly on
// place names. Its failures (unknown stop, ambiguity, no route) come back as
// structured payloads with an errorType the model is expected to branch on.
type FindItineraryByNameTool struct {
	ByName ByNameFinder
}

func (t *FindItineraryByNameTool) Name() string { return "findItineraryByName" }

func (t *FindItineraryByNameTool) Definition() llmTool {
	return llmToolDefinition(t.Name(),
		"Compute journeys between two place names as the user said them. Resolves each name to a stop "+
			"(reporting ambiguity with candidate names when several stops match equally well), then "+
			"returns journeys with stop names, route names and times - or a structured error with an "+
			"errorType field to act on. Call getCurrentDateTime first to resolve relative dates.",
		map[string]schema{
			"startName":     {Type: "string", Description: "Origin place name"},
			"endName":       {Type: "string", Description: "Destination place name"},
			"date":          {Type: "string", Description: "Service date YYYYMMDD"},
			"departureTime": {Type: "string", Description: "Earliest departure HH:MM or HH:MM:SS"},
			"maxTransfers":  {Type: "integer", Description: "Maximum transfers allowed (default 2)"},
			"journeysCount": {Type: "integer", Description: "Maximum journeys returned (default 3)"},
		}, []string{"startName", "endName", "date", "departureTime"})
}

type findItineraryByNameInput struct {
	StartName     string `json:"startName" validate:"required"`
	EndName       string `json:"endName" validate:"required"`
	Date          string `json:"date" validate:"required"`
	DepartureTime string `json:"departureTime" validate:"required"`
	MaxTransfers  *int   `json:"maxTransfers"`
	JourneysCount int    `json:"journeysCount"`
}

func (t *FindItineraryByNameTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	var decoded findItineraryByNameInput
	if err := decodeInput(input, &decoded); err != nil {
		return nil, err
	}

	// Date and time format problems come back as INVALID_DATE_TIME payloads
	// from the orchestrator itself, so no format validation happens here.
	return t.ByName.FindItineraryByName(ctx, decoded.StartName, decoded.EndName, decoded.Date, decoded.DepartureTime, itinerary.NameOptions{
		MaxTransfers:  maxTransfersOrDefault(decoded.MaxTransfers),
		JourneysCount: decoded.JourneysCount,
	})
}
