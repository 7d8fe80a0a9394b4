package routes

import (
	"net/http"

	"github.com/lifeline-ai/backend/internal/api/handlers"
	"github.com/lifeline-ai/backend/internal/api/middleware"
	"github.com/lifeline-ai/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	emergencyHandler *handlers.EmergencyHandler
	hospitalHandler  *handlers.HospitalHandler
	voiceHandler     *handlers.VoiceHandler
	imageHandler     *handlers.ImageHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	emergencyHandler *handlers.EmergencyHandler,
	hospitalHandler *handlers.HospitalHandler,
	voiceHandler *handlers.VoiceHandler,
	imageHandler *handlers.ImageHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		emergencyHandler: emergencyHandler,
		hospitalHandler:  hospitalHandler,
		voiceHandler:     voiceHandler,
		imageHandler:     imageHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"service":"lifeline-ai","status":"running"}`)); err != nil {
			return
		}
	})

	// Emergency triage endpoints

	r.mux.HandleFunc("POST /api/v1/emergency/analyze", r.emergencyHandler.Analyze)
	r.mux.HandleFunc("POST /api/v1/emergency/detect", r.emergencyHandler.Detect)
	r.mux.HandleFunc("POST /api/v1/emergency/first-aid", r.emergencyHandler.FirstAid)
	r.mux.HandleFunc("GET /api/v1/emergency/health", r.emergencyHandler.Health)

	// Hospital endpoints

	r.mux.HandleFunc("POST /api/v1/hospitals/nearby", r.hospitalHandler.FindNearby)
	r.mux.HandleFunc("GET /api/v1/hospitals/health", r.hospitalHandler.Health)

	// Voice input endpoints

	r.mux.HandleFunc("POST /api/v1/voice/process", r.voiceHandler.Process)
	r.mux.HandleFunc("GET /api/v1/voice/health", r.voiceHandler.Health)

	// Image input endpoints

	r.mux.HandleFunc("POST /api/v1/image/process", r.imageHandler.Process)
	r.mux.HandleFunc("GET /api/v1/image/health", r.imageHandler.Health)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
