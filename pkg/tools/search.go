package tools

import (
	"context"
	"encoding/json"

	"github.com/sysdevrun/transitchat/pkg/transit"
)

type StopSearcher interface {
	SearchStopsByWords(ctx context.Context, query string, limit int) ([]transit.ScoredStop, error)
}

// SearchStopsTool exposes the fuzzy multi-word stop resolver.
type SearchStopsTool struct {
	Resolver StopSearcher
}

func (t *SearchStopsTool) Name() string { return "searchStopsByWords" }

func (t *SearchStopsTool) Definition() llmTool {
	return llmToolDefinition(t.Name(),
		"Fuzzy-search stops by free text. The query is split into words and each word is matched "+
			"against stop names ignoring case and accents; stops matching more words rank higher. "+
			"Use this to turn a place name a user said into stop IDs.",
		map[string]schema{
			"query": {Type: "string", Description: "Free text place name, e.g. \"gare centrale\""},
			"limit": {Type: "integer", Description: "Maximum number of results (default 10)"},
		}, []string{"query"})
}

type searchStopsInput struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit"`
}

func (t *SearchStopsTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	var decoded searchStopsInput
	if err := decodeInput(input, &decoded); err != nil {
		return nil, err
	}

	if decoded.Limit <= 0 {
		decoded.Limit = 10
	}

	return t.Resolver.SearchStopsByWords(ctx, decoded.Query, decoded.Limit)
}
