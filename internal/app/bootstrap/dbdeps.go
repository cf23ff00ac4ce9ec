// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
)

// legacyDatabase is used when neither the config nor the connection string
// names a database.
const legacyDatabase = "test"

const connectTimeout = 10 * time.Second

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}

// ConnectDB connects to MongoDB and verifies the connection with a ping.
func ConnectDB(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	dbName, err := databaseName(appCfg)
	if err != nil {
		return DBDeps{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", dbName),
		zap.Uint64("max_pool_size", appCfg.MongoMaxPoolSize),
		zap.Uint64("min_pool_size", appCfg.MongoMinPoolSize))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(dbName),
	}, nil
}

// databaseName picks the configured database, else the one in the URI
// path, else legacyDatabase.
func databaseName(appCfg AppConfig) (string, error) {
	if appCfg.MongoDatabase != "" {
		return appCfg.MongoDatabase, nil
	}
	cs, err := connstring.ParseAndValidate(appCfg.MongoURI)
	if err != nil {
		return "", fmt.Errorf("parse mongo_uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return legacyDatabase, nil
}
