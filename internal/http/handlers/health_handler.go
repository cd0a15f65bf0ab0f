package handlers

import (
	"context"
	"net/http"
	"time"

	"task-tracker-api/internal/http/dto"
)

const (
	healthOK          = "OK"
	healthUnavailable = "UNAVAILABLE"
)

// Pinger is implemented by stores that talk to a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	environment string
	store       string
	pinger      Pinger
	started     time.Time
	now         func() time.Time
}

// NewHealth reports on the process. pinger may be nil for in-process stores.
func NewHealth(environment, store string, pinger Pinger) *HealthHandler {
	now := time.Now
	return &HealthHandler{
		environment: environment,
		store:       store,
		pinger:      pinger,
		started:     now(),
		now:         now,
	}
}

// GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	response := dto.HealthResponse{
		Status:      healthOK,
		Timestamp:   now.UTC(),
		Uptime:      now.Sub(h.started).Seconds(),
		Environment: h.environment,
		Store:       h.store,
	}

	status := http.StatusOK
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			response.Status = healthUnavailable
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, response)
}
