package transitdata

import (
	"context"

	"github.com/sysdevrun/transitchat/pkg/transit"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TripsForServices returns every trip running under the given service IDs.
// Unlike GetTrips this is unbounded - it feeds the per-date network graph.
func (r *Repository) TripsForServices(ctx context.Context, serviceIDs []string) ([]transit.Trip, error) {
	cursor, err := r.db.Collection("trips").Find(ctx, bson.M{"service_id": bson.M{"$in": serviceIDs}})
	if err != nil {
		return nil, err
	}

	var trips []transit.Trip
	err = cursor.All(ctx, &trips)
	return trips, err
}

// StopTimesForTrips returns the full ordered stop time list for a set of
// trips, sorted by trip then stop sequence.
func (r *Repository) StopTimesForTrips(ctx context.Context, tripIDs []string) ([]transit.StopTime, error) {
	cursor, err := r.db.Collection("stop_times").Find(ctx,
		bson.M{"trip_id": bson.M{"$in": tripIDs}},
		options.Find().SetSort(bson.D{{Key: "trip_id", Value: 1}, {Key: "stop_sequence", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var stopTimes []transit.StopTime
	err = cursor.All(ctx, &stopTimes)
	return stopTimes, err
}
