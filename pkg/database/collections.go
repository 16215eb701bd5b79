package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (i *Instance) createIndexes(ctx context.Context) {
	i.createCollectionIndexes(ctx, "stops", []mongo.IndexModel{
		{Keys: bson.D{{Key: "stop_id", Value: 1}}},
		{Keys: bson.D{{Key: "stop_name_normalized", Value: 1}}},
		{Keys: bson.D{{Key: "parent_station", Value: 1}}},
	})

	i.createCollectionIndexes(ctx, "routes", []mongo.IndexModel{
		{Keys: bson.D{{Key: "route_id", Value: 1}}},
		{Keys: bson.D{{Key: "route_short_name", Value: 1}}},
	})

	i.createCollectionIndexes(ctx, "trips", []mongo.IndexModel{
		{Keys: bson.D{{Key: "trip_id", Value: 1}}},
		{Keys: bson.D{{Key: "route_id", Value: 1}}},
		{Keys: bson.D{{Key: "service_id", Value: 1}}},
	})

	i.createCollectionIndexes(ctx, "stop_times", []mongo.IndexModel{
		{Keys: bson.D{{Key: "trip_id", Value: 1}, {Key: "stop_sequence", Value: 1}}},
		{Keys: bson.D{{Key: "stop_id", Value: 1}, {Key: "departure_time", Value: 1}}},
	})

	i.createCollectionIndexes(ctx, "calendars", []mongo.IndexModel{
		{Keys: bson.D{{Key: "service_id", Value: 1}}},
	})

	i.createCollectionIndexes(ctx, "calendar_dates", []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})
}

func (i *Instance) createCollectionIndexes(ctx context.Context, collectionName string, indexes []mongo.IndexModel) {
	_, err := i.Collection(collectionName).Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Error().Err(err).Str("collection", collectionName).Msg("Failed to create indexes")
	}
}
