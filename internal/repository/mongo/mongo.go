package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names.
const (
	eventsCollection   = "events"
	bookingsCollection = "bookings"
)

// DatabaseProvider hands out the shared database handle. *database.MongoConnector implements it.
type DatabaseProvider interface {
	Acquire(ctx context.Context) (*mongo.Database, error)
}

// StaticDatabase wraps an already connected database as a DatabaseProvider.
type StaticDatabase struct {
	DB *mongo.Database
}

func (s StaticDatabase) Acquire(context.Context) (*mongo.Database, error) {
	return s.DB, nil
}

func collection(ctx context.Context, p DatabaseProvider, name string) (*mongo.Collection, error) {
	db, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}
