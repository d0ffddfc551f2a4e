package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes registers the event and booking indexes. It is run once at startup;
// createIndexes is a no-op for indexes that already exist with the same keys and options.
func EnsureIndexes(ctx context.Context, p DatabaseProvider) error {
	db, err := p.Acquire(ctx)
	if err != nil {
		return err
	}

	eventIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("slug_1"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_-1"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("tags_1"),
		},
	}
	if _, err := db.Collection(eventsCollection).Indexes().CreateMany(ctx, eventIndexes); err != nil {
		return fmt.Errorf("create event indexes: %w", err)
	}

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "eventId", Value: 1}},
			Options: options.Index().SetName("eventId_1"),
		},
		{
			Keys:    bson.D{{Key: "eventId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("eventId_1_createdAt_-1"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_1"),
		},
		{
			Keys:    bson.D{{Key: "eventId", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_event_email"),
		},
	}
	if _, err := db.Collection(bookingsCollection).Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("create booking indexes: %w", err)
	}
	return nil
}
