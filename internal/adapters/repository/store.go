// Package repository defines the event store interface and its backends.
package repository

import (
	"context"
	"time"

	"github.com/okian/planner/internal/domain/event"
	"github.com/okian/planner/internal/domain/query"
)

// Query selects and orders a page of the collection.
type Query struct {
	// Filter carries the category/priority/search/sort configuration.
	Filter query.Config

	// Completed restricts to one completion state when non-nil.
	Completed *bool

	// Page is 1-based. Limit bounds the page size; values < 1 are
	// normalized by the caller before reaching the store.
	Page  int
	Limit int
}

// Store provides durable CRUD over the event collection.
//
// Both backends route ordering through the query engine, so a page looks
// the same regardless of which backend produced it.
type Store interface {
	// Insert persists a new event. The caller assigns ID and CreatedAt.
	Insert(ctx context.Context, e event.Event) error

	// Get returns the event with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (event.Event, error)

	// Update applies a partial patch and returns the updated document, or
	// ErrNotFound. ID and CreatedAt are immutable.
	Update(ctx context.Context, id string, p event.Patch) (event.Event, error)

	// Delete removes the event and returns the removed document, or
	// ErrNotFound. The rest of the collection is untouched either way.
	Delete(ctx context.Context, id string) (event.Event, error)

	// List returns one page of the filtered, ordered collection plus the
	// total number of matching documents.
	List(ctx context.Context, q Query) ([]event.Event, int, error)

	// Upcoming returns events strictly after the given instant, soonest
	// first, capped at limit.
	Upcoming(ctx context.Context, after time.Time, limit int) ([]event.Event, error)

	// Count returns the number of stored events.
	Count(ctx context.Context) (int, error)
}

// matchesCompleted applies the optional completion filter shared by the
// backends.
func matchesCompleted(e event.Event, completed *bool) bool {
	return completed == nil || e.Completed == *completed
}

// paginate slices one 1-based page out of an already ordered collection.
func paginate(events []event.Event, page, limit int) []event.Event {
	if limit < 1 {
		return events
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(events) {
		return []event.Event{}
	}
	end := start + limit
	if end > len(events) {
		end = len(events)
	}
	return events[start:end]
}
