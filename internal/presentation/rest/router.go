package rest

import "net/http"

// NewRouter mounts the health checks and scoring routes, plus the metrics
// scrape endpoint when metrics is non-nil.
func NewRouter(health *HealthHandler, score *ScoreHandler, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	health.RegisterRoutes(mux)
	score.RegisterRoutes(mux)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	return mux
}
