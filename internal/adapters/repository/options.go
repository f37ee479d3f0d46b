// Package repository defines the event store interface and its backends.
package repository

import "github.com/okian/planner/internal/domain/event"

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithSeed preloads the store with events, normalizing category and
// priority on the way in. Useful for demos and tests.
func WithSeed(events ...event.Event) MemoryOption {
	return func(s *MemoryStore) {
		for _, e := range events {
			s.events[e.ID] = e.Normalized()
		}
	}
}

// MongoOption applies a configuration option to the MongoStore.
type MongoOption func(*MongoStore)

// WithCollection overrides the default collection name.
func WithCollection(name string) MongoOption {
	return func(s *MongoStore) {
		if name != "" {
			s.collection = name
		}
	}
}
