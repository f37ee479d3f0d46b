// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// HealthHandler handles the health probe and the root endpoint.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth handles GET /health.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   "Event Planner backend is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleRoot serves a small index on / and a JSON 404 for every path no
// other route claimed.
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Success: false,
			Error:   "Not Found",
			Message: "The requested endpoint does not exist",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the Event Planner API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"events":   "/api/events",
			"calendar": "/api/events/calendar",
			"health":   "/health",
			"metrics":  "/metrics",
		},
	})
}
