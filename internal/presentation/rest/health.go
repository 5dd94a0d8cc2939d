package rest

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthHandler provides HTTP health check endpoints for the credit risk service.
type HealthHandler struct {
	logger      *slog.Logger
	startTime   time.Time
	serviceName string
	model       string
	ready       atomic.Bool
}

// NewHealthHandler creates a new health check handler. Readiness stays false
// until SetReady is called.
func NewHealthHandler(serviceName, modelVersion string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:      logger,
		startTime:   time.Now(),
		serviceName: serviceName,
		model:       modelVersion,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// SetReady marks the service as ready or not ready to take traffic.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz reports liveness.
func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
		Uptime:  time.Since(h.startTime).String(),
	})
}

// Readyz reports readiness.
func (h *HealthHandler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if !h.ready.Load() {
		writeJSON(w, h.logger, http.StatusServiceUnavailable, ReadinessResponse{
			Status:  "not_ready",
			Service: h.serviceName,
			Checks:  map[string]string{"model": "loading"},
		})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, ReadinessResponse{
		Status:  "ready",
		Service: h.serviceName,
		Checks:  map[string]string{"model": h.model},
	})
}
