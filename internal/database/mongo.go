package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	mongoMaxPoolSize            = 10
	mongoServerSelectionTimeout = 5 * time.Second
	mongoSocketTimeout          = 45 * time.Second
)

// MongoConnector caches the process-wide MongoDB database handle.
type MongoConnector = Connector[*mongo.Database]

// NewMongoConnector returns a connector for uri. database overrides the database
// named in the URI path; when both are empty "devevents" is used.
func NewMongoConnector(uri, database string) *MongoConnector {
	return NewConnector("MongoDB", uri, DialMongo(database), func(ctx context.Context, db *mongo.Database) error {
		return db.Client().Disconnect(ctx)
	})
}

// DialMongo returns a DialFunc that connects, pings the primary and selects the database.
func DialMongo(database string) DialFunc[*mongo.Database] {
	return func(ctx context.Context, uri string) (*mongo.Database, error) {
		cs, err := connstring.ParseAndValidate(uri)
		if err != nil {
			return nil, fmt.Errorf("parse uri: %w", err)
		}
		name := database
		if name == "" {
			name = cs.Database
		}
		if name == "" {
			name = "devevents"
		}

		opts := options.Client().
			ApplyURI(uri).
			SetMaxPoolSize(mongoMaxPoolSize).
			SetServerSelectionTimeout(mongoServerSelectionTimeout).
			SetSocketTimeout(mongoSocketTimeout)
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("ping: %w", err)
		}
		return client.Database(name), nil
	}
}

// PingMongo checks the primary is reachable.
func PingMongo(ctx context.Context, db *mongo.Database) error {
	return db.Client().Ping(ctx, readpref.Primary())
}
