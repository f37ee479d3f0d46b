// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/planner/internal/adapters/repository"
	"github.com/okian/planner/internal/domain/calendar"
	"github.com/okian/planner/internal/domain/event"
	"github.com/okian/planner/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	List(ctx context.Context, q repository.Query) ([]event.Event, int, error)
	Get(ctx context.Context, id string) (event.Event, error)
	Create(ctx context.Context, draft event.Event) (event.Event, error)
	Update(ctx context.Context, id string, p event.Patch) (event.Event, error)
	Delete(ctx context.Context, id string) (event.Event, error)
	ToggleCompleted(ctx context.Context, id string) (event.Event, error)
	Upcoming(ctx context.Context, limit int) ([]event.Event, error)
	MonthGrid(ctx context.Context, year int, month time.Month) (calendar.Grid, error)
	ICSFeed(ctx context.Context) (string, error)

	// Location is the zone offset-free datetimes are interpreted in.
	Location() *time.Location
}

// Limits bound the list and upcoming query parameters.
type Limits struct {
	DefaultPage int
	MaxPage     int
	Upcoming    int
}

// Server wires HTTP routes for the business API.
type Server struct {
	eventsHandler   *EventsHandler
	calendarHandler *CalendarHandler
	healthHandler   *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, limits Limits) *Server {
	return &Server{
		eventsHandler:   NewEventsHandler(deps, limits),
		calendarHandler: NewCalendarHandler(deps),
		healthHandler:   NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux. Literal segments win over the
// {id} wildcard, so the upcoming and calendar paths stay reachable.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /api/events", MetricsMiddleware(s.eventsHandler.HandleList, "events_list"))
	mux.HandleFunc("POST /api/events", MetricsMiddleware(s.eventsHandler.HandleCreate, "events_create"))
	mux.HandleFunc("GET /api/events/{id}", MetricsMiddleware(s.eventsHandler.HandleGet, "events_get"))
	mux.HandleFunc("PUT /api/events/{id}", MetricsMiddleware(s.eventsHandler.HandleUpdate, "events_update"))
	mux.HandleFunc("DELETE /api/events/{id}", MetricsMiddleware(s.eventsHandler.HandleDelete, "events_delete"))
	mux.HandleFunc("PATCH /api/events/{id}/toggle", MetricsMiddleware(s.eventsHandler.HandleToggle, "events_toggle"))
	mux.HandleFunc("GET /api/events/upcoming/events", MetricsMiddleware(s.eventsHandler.HandleUpcoming, "events_upcoming"))
	mux.HandleFunc("GET /api/events/calendar", MetricsMiddleware(s.calendarHandler.HandleMonthGrid, "calendar_grid"))
	mux.HandleFunc("GET /api/events/calendar.ics", MetricsMiddleware(s.calendarHandler.HandleICSFeed, "calendar_ics"))
	mux.HandleFunc("GET /health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/", s.healthHandler.HandleRoot)
}

// response is the success envelope shared by every endpoint.
type response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

// pagination describes one page of a list response.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// errorResponse is the failure envelope: success=false plus a short error
// label and a human-readable message.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, label string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Success: false, Error: label, Message: msg})
}

// writeStoreError translates store failures: unknown id -> 404,
// anything else -> 500.
func writeStoreError(w http.ResponseWriter, label string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Error: "Event not found"})
		return
	}
	writeError(w, http.StatusInternalServerError, label, err)
}
