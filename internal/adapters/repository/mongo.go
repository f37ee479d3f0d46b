// Package repository defines the event store interface and its backends.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/planner/internal/domain/event"
	"github.com/okian/planner/internal/domain/query"
	"github.com/okian/planner/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// defaultCollection is the document collection holding events.
const defaultCollection = "events"

// MongoStore persists events in a MongoDB document collection. Category,
// priority, completion and search filters are translated to native bson
// queries; ordering runs through the query engine so pages match the
// memory backend exactly.
type MongoStore struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoStore connects to the given URI and verifies the connection with
// a ping before returning.
func NewMongoStore(ctx context.Context, uri, database string, opts ...MongoOption) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	s := &MongoStore{
		client:     client,
		database:   database,
		collection: defaultCollection,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

func (s *MongoStore) col() *mongo.Collection {
	return s.client.Database(s.database).Collection(s.collection)
}

// Insert persists a new event keyed by its id.
func (s *MongoStore) Insert(ctx context.Context, e event.Event) error {
	if _, err := s.col().InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	metrics.RecordStoreWrite()
	return nil
}

// Get returns the event with the given id, or ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, id string) (event.Event, error) {
	var e event.Event
	err := s.col().FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return event.Event{}, ErrNotFound
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e.Normalized(), nil
}

// Update applies a partial patch via $set and returns the updated document.
func (s *MongoStore) Update(ctx context.Context, id string, p event.Patch) (event.Event, error) {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Datetime != nil {
		set["datetime"] = *p.Datetime
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	after := options.After
	var e event.Event
	err := s.col().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return event.Event{}, ErrNotFound
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("update event: %w", err)
	}
	metrics.RecordStoreWrite()
	return e.Normalized(), nil
}

// Delete removes the event and returns the removed document.
func (s *MongoStore) Delete(ctx context.Context, id string) (event.Event, error) {
	var e event.Event
	err := s.col().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return event.Event{}, ErrNotFound
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("delete event: %w", err)
	}
	metrics.RecordStoreWrite()
	return e.Normalized(), nil
}

// List fetches the documents matching the filter and delegates ordering
// and pagination to the query engine.
func (s *MongoStore) List(ctx context.Context, q Query) ([]event.Event, int, error) {
	filter := bson.M{}
	if c := q.Filter.Category; c != "" && c != query.FilterAll {
		filter["category"] = c
	}
	if p := q.Filter.Priority; p != "" && p != query.FilterAll {
		filter["priority"] = p
	}
	if q.Completed != nil {
		filter["completed"] = *q.Completed
	}
	if q.Filter.Search != "" {
		pattern := bson.M{"$regex": q.Filter.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	cur, err := s.col().Find(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var matched []event.Event
	for cur.Next(ctx) {
		var e event.Event
		if err := cur.Decode(&e); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
		matched = append(matched, e.Normalized())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	// Search already applied server-side; the engine re-checks cheaply and
	// settles the ordering.
	matched = query.Apply(matched, q.Filter)
	return paginate(matched, q.Page, q.Limit), len(matched), nil
}

// Upcoming returns events strictly after the given instant, soonest first.
func (s *MongoStore) Upcoming(ctx context.Context, after time.Time, limit int) ([]event.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "datetime", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.col().Find(ctx, bson.M{"datetime": bson.M{"$gt": after}}, opts)
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	defer cur.Close(ctx)

	var out []event.Event
	for cur.Next(ctx) {
		var e event.Event
		if err := cur.Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
		out = append(out, e.Normalized())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	return out, nil
}

// Count returns the number of stored events.
func (s *MongoStore) Count(ctx context.Context) (int, error) {
	n, err := s.col().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return int(n), nil
}
