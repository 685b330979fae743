package rest

import (
	"net/http"

	"github.com/heartmarshall/shadowing-backend/internal/transport/middleware"
)

// RouterDeps holds everything the HTTP router mounts.
type RouterDeps struct {
	Practice    *PracticeHandler
	Health      *HealthHandler
	Metrics     http.Handler
	MetricsPath string
	// Global wraps every route.
	Global middleware.Middleware
	// ScoreLimit wraps the CPU-bound scoring endpoint only.
	ScoreLimit middleware.Middleware
}

// NewRouter registers all routes on a ServeMux and wraps it in the global
// middleware.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	if d.Metrics != nil {
		mux.Handle("GET "+d.MetricsPath, d.Metrics)
	}

	score := http.Handler(http.HandlerFunc(d.Practice.Score))
	if d.ScoreLimit != nil {
		score = d.ScoreLimit(score)
	}
	mux.Handle("POST /v1/practice/score", score)
	mux.HandleFunc("GET /v1/practice/sessions", d.Practice.List)
	mux.HandleFunc("GET /v1/practice/sessions/{exerciseID}", d.Practice.Get)
	mux.HandleFunc("PUT /v1/practice/sessions/{exerciseID}", d.Practice.Save)
	mux.HandleFunc("POST /v1/practice/sessions/{exerciseID}/restart", d.Practice.Restart)
	mux.HandleFunc("POST /v1/practice/sessions/{exerciseID}/explanations", d.Practice.Explain)
	mux.HandleFunc("GET /v1/vocabulary", d.Practice.Vocabulary)

	if d.Global == nil {
		return mux
	}
	return d.Global(mux)
}
