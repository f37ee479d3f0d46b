// Package service provides the core business service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/planner/internal/adapters/repository"
	"github.com/okian/planner/internal/domain/calendar"
	"github.com/okian/planner/internal/domain/event"
	"github.com/okian/planner/internal/ics"
	"github.com/okian/planner/pkg/logger"
	"github.com/okian/planner/pkg/metrics"
)

// Service owns the event collection: it is the single state container both
// the list and calendar surfaces derive their views from.
type Service struct {
	store repository.Store
	loc   *time.Location
	now   func() time.Time
	log   logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the storage backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLocation sets the timezone used for calendar bucketing.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service. Without options it runs on an in-memory store
// in the process timezone.
func New(opts ...Option) *Service {
	s := &Service{
		store: repository.NewMemoryStore(),
		loc:   time.Local,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// Close releases the storage backend if it holds external resources.
func (s *Service) Close(ctx context.Context) error {
	if closer, ok := s.store.(interface{ Close(context.Context) error }); ok {
		return closer.Close(ctx)
	}
	return nil
}

// Location returns the timezone offset-free datetimes are interpreted in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// List returns one page of the filtered, ordered collection plus the total
// match count.
func (s *Service) List(ctx context.Context, q repository.Query) ([]event.Event, int, error) {
	return s.store.List(ctx, q)
}

// Get fetches a single event by id.
func (s *Service) Get(ctx context.Context, id string) (event.Event, error) {
	return s.store.Get(ctx, id)
}

// Create persists a new event. The server assigns the id and the creation
// timestamp; category and priority degrade to their defaults here, at the
// ingestion boundary.
func (s *Service) Create(ctx context.Context, draft event.Event) (event.Event, error) {
	e := draft.Normalized()
	e.ID = uuid.NewString()
	e.CreatedAt = s.now()
	e.Completed = false

	if err := s.store.Insert(ctx, e); err != nil {
		return event.Event{}, err
	}
	metrics.RecordEventCreated()
	s.log.Info(ctx, "event created",
		logger.String("id", e.ID),
		logger.String("title", e.Title),
	)
	return e, nil
}

// Update applies a partial patch. ID and CreatedAt survive resubmission
// untouched; only user-editable fields change.
func (s *Service) Update(ctx context.Context, id string, p event.Patch) (event.Event, error) {
	if p.Category != nil {
		c := event.ParseCategory(string(*p.Category))
		p.Category = &c
	}
	if p.Priority != nil {
		pr := event.ParsePriority(string(*p.Priority))
		p.Priority = &pr
	}
	e, err := s.store.Update(ctx, id, p)
	if err != nil {
		return event.Event{}, err
	}
	metrics.RecordEventUpdated()
	s.log.Info(ctx, "event updated", logger.String("id", id))
	return e, nil
}

// Delete removes an event and returns the removed document.
func (s *Service) Delete(ctx context.Context, id string) (event.Event, error) {
	e, err := s.store.Delete(ctx, id)
	if err != nil {
		return event.Event{}, err
	}
	metrics.RecordEventDeleted()
	s.log.Info(ctx, "event deleted", logger.String("id", id))
	return e, nil
}

// ToggleCompleted flips the completed flag and nothing else. Toggling twice
// restores the original state.
func (s *Service) ToggleCompleted(ctx context.Context, id string) (event.Event, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return event.Event{}, err
	}
	flipped := !cur.Completed
	e, err := s.store.Update(ctx, id, event.Patch{Completed: &flipped})
	if err != nil {
		return event.Event{}, err
	}
	metrics.RecordEventToggled()
	s.log.Info(ctx, "event toggled",
		logger.String("id", id),
		logger.Bool("completed", e.Completed),
	)
	return e, nil
}

// Upcoming returns future events, soonest first.
func (s *Service) Upcoming(ctx context.Context, limit int) ([]event.Event, error) {
	return s.store.Upcoming(ctx, s.now(), limit)
}

// MonthGrid projects the whole collection onto the given month.
func (s *Service) MonthGrid(ctx context.Context, year int, month time.Month) (calendar.Grid, error) {
	events, _, err := s.store.List(ctx, repository.Query{})
	if err != nil {
		return calendar.Grid{}, err
	}
	ref := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	return calendar.MonthGrid(ref, events, s.loc), nil
}

// ICSFeed renders the whole collection as an iCalendar document.
func (s *Service) ICSFeed(ctx context.Context) (string, error) {
	events, _, err := s.store.List(ctx, repository.Query{})
	if err != nil {
		return "", err
	}
	return ics.Feed(events), nil
}
