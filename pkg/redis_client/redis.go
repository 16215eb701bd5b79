package redis_client

import (
	"context"
	"strconv"

	gocache_redis "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sysdevrun/transitchat/pkg/util"
)

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect returns a Redis client, or nil when no address is configured.
// Everything using Redis here is a cache, so running without it is fine.
func Connect(ctx context.Context) (*redis.Client, error) {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["TRANSITCHAT_REDIS_ADDRESS"] != "" {
		address = env["TRANSITCHAT_REDIS_ADDRESS"]
	} else {
		return nil, nil
	}

	if env["TRANSITCHAT_REDIS_PASSWORD"] != "" {
		password = env["TRANSITCHAT_REDIS_PASSWORD"]
	}

	if env["TRANSITCHAT_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["TRANSITCHAT_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return nil, err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// NewCacheStore wraps a connected client as a gocache store.
func NewCacheStore(client *redis.Client) *gocache_redis.RedisStore {
	return gocache_redis.NewRedis(client)
}
