// Package repository defines the event store interface and its backends.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/planner/internal/domain/event"
	"github.com/okian/planner/internal/domain/query"

	"github.com/okian/planner/pkg/metrics"
)

// MemoryStore is the in-process Store backend: a mutex-guarded document
// map. It is the default backend when no database is configured and the
// backend every test runs against.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string]event.Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		events: make(map[string]event.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert persists a new event keyed by its id.
func (s *MemoryStore) Insert(ctx context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = e
	metrics.UpdateEventsStored(len(s.events))
	return nil
}

// Get returns the event with the given id, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return event.Event{}, ErrNotFound
	}
	return e, nil
}

// Update applies a partial patch and returns the updated document.
func (s *MemoryStore) Update(ctx context.Context, id string, p event.Patch) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return event.Event{}, ErrNotFound
	}
	e = p.Apply(e)
	s.events[id] = e
	return e, nil
}

// Delete removes the event and returns the removed document.
func (s *MemoryStore) Delete(ctx context.Context, id string) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return event.Event{}, ErrNotFound
	}
	delete(s.events, id)
	metrics.UpdateEventsStored(len(s.events))
	return e, nil
}

// List filters and orders the collection through the query engine, then
// slices out the requested page.
func (s *MemoryStore) List(ctx context.Context, q Query) ([]event.Event, int, error) {
	s.mu.RLock()
	all := make([]event.Event, 0, len(s.events))
	for _, e := range s.events {
		if matchesCompleted(e, q.Completed) {
			all = append(all, e)
		}
	}
	s.mu.RUnlock()

	matched := query.Apply(all, q.Filter)
	return paginate(matched, q.Page, q.Limit), len(matched), nil
}

// Upcoming returns events strictly after the given instant, soonest first.
func (s *MemoryStore) Upcoming(ctx context.Context, after time.Time, limit int) ([]event.Event, error) {
	s.mu.RLock()
	var future []event.Event
	for _, e := range s.events {
		if e.Datetime.After(after) {
			future = append(future, e)
		}
	}
	s.mu.RUnlock()

	query.Sort(future, query.SortByDate)
	if limit > 0 && len(future) > limit {
		future = future[:limit]
	}
	return future, nil
}

// Count returns the number of stored events.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events), nil
}
