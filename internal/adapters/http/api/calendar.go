// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"time"
)

// CalendarHandler serves the month-grid projection and the iCalendar feed.
type CalendarHandler struct {
	deps Dependencies
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(deps Dependencies) *CalendarHandler {
	return &CalendarHandler{deps: deps}
}

// HandleMonthGrid handles GET /api/events/calendar?year=YYYY&month=M.
// Both parameters default to the current month in the service timezone.
func (h *CalendarHandler) HandleMonthGrid(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(h.deps.Location())
	year, month := now.Year(), now.Month()

	q := r.URL.Query()
	if raw := q.Get("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid year", ErrBadRequest)
			return
		}
		year = n
	}
	if raw := q.Get("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 12 {
			writeError(w, http.StatusBadRequest, "Invalid month", ErrBadRequest)
			return
		}
		month = time.Month(n)
	}

	grid, err := h.deps.MonthGrid(r.Context(), year, month)
	if err != nil {
		writeStoreError(w, "Failed to build calendar", err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: grid})
}

// HandleICSFeed handles GET /api/events/calendar.ics.
func (h *CalendarHandler) HandleICSFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.deps.ICSFeed(r.Context())
	if err != nil {
		writeStoreError(w, "Failed to build calendar feed", err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(feed))
}
