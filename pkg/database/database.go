package database

import (
	"context"
	"time"

	"github.com/sysdevrun/transitchat/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultConnectionString = "mongodb://localhost:27017/"
const defaultDatabase = "transitchat"

// Instance is an owned handle on the transit dataset store. Callers are
// responsible for its lifecycle; there is no package level connection.
type Instance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Connect(ctx context.Context) (*Instance, error) {
	connectionString := defaultConnectionString
	dbName := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["TRANSITCHAT_MONGODB_CONNECTION"] != "" {
		connectionString = env["TRANSITCHAT_MONGODB_CONNECTION"]
	}

	if env["TRANSITCHAT_MONGODB_DATABASE"] != "" {
		dbName = env["TRANSITCHAT_MONGODB_DATABASE"]
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	instance := &Instance{
		Client:   client,
		Database: client.Database(dbName),
	}

	instance.createIndexes(ctx)

	return instance, nil
}

func (i *Instance) Collection(collectionName string) *mongo.Collection {
	return i.Database.Collection(collectionName)
}

func (i *Instance) Close(ctx context.Context) error {
	return i.Client.Disconnect(ctx)
}
