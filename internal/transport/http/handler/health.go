package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Pinger is a dependency whose reachability the deep health check reports.
type Pinger interface {
	HealthCheck() error
}

// HealthHandler handles health-check endpoints.
type HealthHandler struct {
	events Pinger
}

func NewHealthHandler(events Pinger) *HealthHandler { return &HealthHandler{events: events} }

// Ping answers /health-check/ping with pong and /health-check/ready with the
// event broker's status.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "ping":
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pong"})
	case "ready":
		if h.events != nil {
			if err := h.events.HealthCheck(); err != nil {
				writeError(w, http.StatusServiceUnavailable, "event broker unreachable")
				return
			}
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ready"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
