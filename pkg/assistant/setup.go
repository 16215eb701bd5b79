package assistant

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/database"
	"github.com/sysdevrun/transitchat/pkg/elastic_client"
	"github.com/sysdevrun/transitchat/pkg/itinerary"
	"github.com/sysdevrun/transitchat/pkg/llm"
	"github.com/sysdevrun/transitchat/pkg/redis_client"
	"github.com/sysdevrun/transitchat/pkg/resolver"
	"github.com/sysdevrun/transitchat/pkg/routing"
	"github.com/sysdevrun/transitchat/pkg/tools"
	"github.com/sysdevrun/transitchat/pkg/transitdata"
	"github.com/sysdevrun/transitchat/pkg/util"
)

const defaultSystemPrompt = "You are a public transit assistant. Answer questions about stops, routes and " +
	"schedules using the available tools. Call getCurrentDateTime before any date sensitive query. " +
	"Answer briefly in plain spoken language; mention route names and stop names, never internal IDs."

// Stack owns every collaborator one assistant needs: the dataset handle, the
// query layer, the resolver and itinerary engines, the tool registry and the
// model client.
type Stack struct {
	DB         *database.Instance
	Repository *transitdata.Repository
	Resolver   *resolver.Resolver
	Engine     *itinerary.Engine
	ByName     *itinerary.ByName
	Registry   *tools.Registry
	Assistant  *Assistant
	Elastic    *elastic_client.Client
}

// NewStack connects to the dataset store (required), Redis and Elasticsearch
// (both optional) and the model service, and wires the full tool surface.
func NewStack(ctx context.Context) (*Stack, error) {
	db, err := database.Connect(ctx)
	if err != nil {
		return nil, err
	}

	redisClient, err := redis_client.Connect(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		redisClient = nil
	}

	elasticClient, err := elastic_client.Connect()
	if err != nil {
		log.Warn().Err(err).Msg("Elasticsearch unavailable, continuing without exchange events")
		elasticClient = nil
	}

	modelClient, err := llm.NewClientFromEnv()
	if err != nil {
		return nil, err
	}

	repository := transitdata.NewRepository(db, redisClient)
	stopResolver := resolver.NewResolver(repository)
	planner := routing.NewNetworkPlanner(repository)
	engine := itinerary.NewEngine(planner)
	byName := itinerary.NewByName(stopResolver, engine, repository)

	registry := tools.NewRegistry(
		&tools.CurrentDateTime{},
		&tools.GetStopsTool{Backend: repository},
		&tools.GetRoutesTool{Backend: repository},
		&tools.GetTripsTool{Backend: repository},
		&tools.GetStopTimesTool{Backend: repository},
		&tools.SearchStopsTool{Resolver: stopResolver},
		&tools.FindItineraryTool{Engine: engine},
		&tools.FindItineraryByNameTool{ByName: byName},
	)

	systemPrompt := defaultSystemPrompt
	if env := util.GetEnvironmentVariables(); env["TRANSITCHAT_SYSTEM_PROMPT"] != "" {
		systemPrompt = env["TRANSITCHAT_SYSTEM_PROMPT"]
	}

	var events EventSink = NoopSink{}
	if elasticClient != nil {
		events = ElasticSink{Client: elasticClient}
	}

	return &Stack{
		DB:         db,
		Repository: repository,
		Resolver:   stopResolver,
		Engine:     engine,
		ByName:     byName,
		Registry:   registry,
		Assistant:  New(modelClient, registry, events, systemPrompt),
		Elastic:    elasticClient,
	}, nil
}

// Close releases the dataset handle.
func (s *Stack) Close(ctx context.Context) {
	if s.DB != nil {
		s.DB.Close(ctx)
	}
}
