package transitdata

import (
	"context"
	"regexp"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/redis/go-redis/v9"
	"github.com/sysdevrun/transitchat/pkg/database"
	"github.com/sysdevrun/transitchat/pkg/redis_client"
	"github.com/sysdevrun/transitchat/pkg/transit"
	"github.com/sysdevrun/transitchat/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultStopsLimit     = 10
	DefaultRoutesLimit    = 10
	DefaultTripsLimit     = 10
	DefaultStopTimesLimit = 20
)

// Repository is the query surface over one imported transit feed. All lookups
// are read only; the feed is only ever mutated by the data importer.
type Repository struct {
	db *database.Instance

	serviceIDCache *cache.Cache[[]byte]
}

func NewRepository(db *database.Instance, redisClient *redis.Client) *Repository {
	repository := &Repository{db: db}

	if redisClient != nil {
		repository.serviceIDCache = cache.New[[]byte](redis_client.NewCacheStore(redisClient))
	}

	return repository
}

type StopFilter struct {
	IDs      []string
	NamePart string
	// ParentStation filters to the children of one parent stop
	ParentStation string
	Limit         int64
}

type RouteFilter struct {
	IDs      []string
	NamePart string
	Limit    int64
}

type TripFilter struct {
	IDs        []string
	RouteIDs   []string
	ServiceIDs []string
	Limit      int64
}

type StopTimeFilter struct {
	TripIDs []string
	StopIDs []string
	Limit   int64
}

func (r *Repository) GetStops(ctx context.Context, filter StopFilter) ([]transit.Stop, error) {
	conditions := bson.A{}

	if len(filter.IDs) > 0 {
		conditions = append(conditions, bson.M{"stop_id": bson.M{"$in": filter.IDs}})
	}
	if filter.NamePart != "" {
		conditions = append(conditions, bson.M{"stop_name_normalized": bson.M{
			"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(util.NormalizeText(filter.NamePart))},
		}})
	}
	if filter.ParentStation != "" {
		conditions = append(conditions, bson.M{"parent_station": filter.ParentStation})
	}

	var stops []transit.Stop
	err := r.find(ctx, "stops", conditions, limitOrDefault(filter.Limit, DefaultStopsLimit), &stops)
	return stops, err
}

func (r *Repository) GetRoutes(ctx context.Context, filter RouteFilter) ([]transit.Route, error) {
	conditions := bson.A{}

	if len(filter.IDs) > 0 {
		conditions = append(conditions, bson.M{"route_id": bson.M{"$in": filter.IDs}})
	}
	if filter.NamePart != "" {
		namePattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.NamePart), Options: "i"}
		conditions = append(conditions, bson.M{"$or": bson.A{
			bson.M{"route_short_name": bson.M{"$regex": namePattern}},
			bson.M{"route_long_name": bson.M{"$regex": namePattern}},
		}})
	}

	var routes []transit.Route
	err := r.find(ctx, "routes", conditions, limitOrDefault(filter.Limit, DefaultRoutesLimit), &routes)
	return routes, err
}

func (r *Repository) GetTrips(ctx context.Context, filter TripFilter) ([]transit.Trip, error) {
	conditions := bson.A{}

	if len(filter.IDs) > 0 {
		conditions = append(conditions, bson.M{"trip_id": bson.M{"$in": filter.IDs}})
	}
	if len(filter.RouteIDs) > 0 {
		conditions = append(conditions, bson.M{"route_id": bson.M{"$in": filter.RouteIDs}})
	}
	if len(filter.ServiceIDs) > 0 {
		conditions = append(conditions, bson.M{"service_id": bson.M{"$in": filter.ServiceIDs}})
	}

	var trips []transit.Trip
	err := r.find(ctx, "trips", conditions, limitOrDefault(filter.Limit, DefaultTripsLimit), &trips)
	return trips, err
}

func (r *Repository) GetStopTimes(ctx context.Context, filter StopTimeFilter) ([]transit.StopTime, error) {
	conditions := bson.A{}

	if len(filter.TripIDs) > 0 {
		conditions = append(conditions, bson.M{"trip_id": bson.M{"$in": filter.TripIDs}})
	}
	if len(filter.StopIDs) > 0 {
		conditions = append(conditions, bson.M{"stop_id": bson.M{"$in": filter.StopIDs}})
	}

	var stopTimes []transit.StopTime
	err := r.find(ctx, "stop_times", conditions, limitOrDefault(filter.Limit, DefaultStopTimesLimit), &stopTimes)
	return stopTimes, err
}

// SearchStopsByName performs the case & diacritic insensitive substring lookup
// used by the stop resolver. Unlike GetStops it has no default limit clamp.
func (r *Repository) SearchStopsByName(ctx context.Context, namePart string, limit int64) ([]transit.Stop, error) {
	return r.GetStops(ctx, StopFilter{NamePart: namePart, Limit: limit})
}

func (r *Repository) find(ctx context.Context, collectionName string, conditions bson.A, limit int64, results any) error {
	query := bson.M{}
	if len(conditions) > 0 {
		query = bson.M{"$and": conditions}
	}

	cursor, err := r.db.Collection(collectionName).Find(ctx, query, options.Find().SetLimit(limit))
	if err != nil {
		return err
	}

	return cursor.All(ctx, results)
}

func limitOrDefault(limit int64, fallback int64) int64 {
	if limit <= 0 {
		return fallback
	}

	return limit
}

const serviceIDCacheTTL = 15 * time.Minute

func (r *Repository) cacheOptions() []store.Option {
	return []store.Option{store.WithExpiration(serviceIDCacheTTL)}
}
