package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/garcia-realty/leadflow/internal/http/middleware"
	"github.com/garcia-realty/leadflow/internal/qualification"
	"github.com/garcia-realty/leadflow/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger               *logging.Logger
	QualificationHandler *qualification.Handler
	MetricsHandler       http.Handler
	CORSAllowedOrigins   []string

	// Requests/sec and burst per IP for the qualify endpoint. Zero
	// disables rate limiting.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Tenant-scoped API routes.
	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(requireLocationID)
		if cfg.RateLimitPerSecond > 0 {
			v1.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		}
		if cfg.QualificationHandler != nil {
			v1.Post("/qualify", cfg.QualificationHandler.Qualify)
			v1.Get("/contacts/{contactID}/qualification", cfg.QualificationHandler.GetLatest)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
