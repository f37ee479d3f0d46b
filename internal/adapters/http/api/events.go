// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/planner/internal/adapters/repository"
	"github.com/okian/planner/internal/domain/event"
	"github.com/okian/planner/internal/domain/query"
)

// EventsHandler handles the /api/events CRUD surface.
type EventsHandler struct {
	deps   Dependencies
	limits Limits
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies, limits Limits) *EventsHandler {
	return &EventsHandler{deps: deps, limits: limits}
}

// eventRequest mirrors the wire schema for POST /api/events.
type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Datetime    string `json:"datetime"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

func (r eventRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return ErrTitleRequired
	case strings.TrimSpace(r.Datetime) == "":
		return ErrDatetimeRequired
	}
	return nil
}

// updateRequest mirrors the wire schema for PUT /api/events/{id}. Absent
// fields leave the stored values untouched.
type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Datetime    *string `json:"datetime"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// HandleList handles GET /api/events.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := h.limits.DefaultPage
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit", ErrBadRequest)
			return
		}
		if n > h.limits.MaxPage {
			n = h.limits.MaxPage
		}
		limit = n
	}
	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid page", ErrBadRequest)
			return
		}
		page = n
	}

	var completed *bool
	if raw := q.Get("completed"); raw != "" {
		b := raw == "true"
		completed = &b
	}

	events, total, err := h.deps.List(r.Context(), repository.Query{
		Filter: query.Config{
			Category: q.Get("category"),
			Priority: q.Get("priority"),
			Search:   q.Get("search"),
			SortBy:   query.ParseSortBy(q.Get("sortBy")),
		},
		Completed: completed,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		writeStoreError(w, "Failed to fetch events", err)
		return
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	writeJSON(w, http.StatusOK, response{
		Success:    true,
		Data:       events,
		Pagination: &pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	})
}

// HandleGet handles GET /api/events/{id}.
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.deps.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, "Failed to fetch event", err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: e})
}

// HandleCreate handles POST /api/events.
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Title and datetime are required", err)
		return
	}
	dt, err := event.ParseDatetime(req.Datetime, h.deps.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid datetime", ErrMalformedDatetime)
		return
	}

	e, err := h.deps.Create(r.Context(), event.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Datetime:    dt,
		Location:    req.Location,
		Category:    event.ParseCategory(req.Category),
		Priority:    event.ParsePriority(req.Priority),
	})
	if err != nil {
		writeStoreError(w, "Failed to create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, response{
		Success: true,
		Message: "Event created successfully",
		Data:    e,
	})
}

// HandleUpdate handles PUT /api/events/{id}.
func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch := event.Patch{
		Description: req.Description,
		Location:    req.Location,
		Completed:   req.Completed,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "Title must not be empty", ErrTitleRequired)
			return
		}
		patch.Title = &title
	}
	if req.Datetime != nil && strings.TrimSpace(*req.Datetime) != "" {
		dt, err := event.ParseDatetime(*req.Datetime, h.deps.Location())
		if err != nil {
			// Malformed datetime aborts the edit; the stored event is
			// left untouched.
			writeError(w, http.StatusBadRequest, "Invalid datetime", ErrMalformedDatetime)
			return
		}
		patch.Datetime = &dt
	}
	if req.Category != nil {
		c := event.ParseCategory(*req.Category)
		patch.Category = &c
	}
	if req.Priority != nil {
		p := event.ParsePriority(*req.Priority)
		patch.Priority = &p
	}

	e, err := h.deps.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, "Failed to update event", err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Event updated successfully",
		Data:    e,
	})
}

// HandleDelete handles DELETE /api/events/{id}.
func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	e, err := h.deps.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, "Failed to delete event", err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Event deleted successfully",
		Data:    e,
	})
}

// HandleToggle handles PATCH /api/events/{id}/toggle.
func (h *EventsHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	e, err := h.deps.ToggleCompleted(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, "Failed to toggle event status", err)
		return
	}
	msg := "Event marked as incomplete"
	if e.Completed {
		msg = "Event marked as complete"
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: msg, Data: e})
}

// HandleUpcoming handles GET /api/events/upcoming/events?limit=N.
func (h *EventsHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	limit := h.limits.Upcoming
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit", ErrBadRequest)
			return
		}
		limit = n
	}
	events, err := h.deps.Upcoming(r.Context(), limit)
	if err != nil {
		writeStoreError(w, "Failed to fetch upcoming events", err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: events})
}
