package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig collects everything NewRouter mounts.
type RouterConfig struct {
	Handler            *Handler
	Contacts           *ContactHandler
	Static             *StaticHandler
	CORS               CORSConfig
	RateLimitPerMinute int
}

// NewRouter builds the HTTP routes. The API routes are served both at the
// root and under /api.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)
	r.Use(CORS(cfg.CORS))
	r.Use(Metrics)

	r.Get("/health", cfg.Handler.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", cfg.Static.Index)

	// Both mounts share one limiter.
	limit := RateLimit(cfg.RateLimitPerMinute)
	api := func(r chi.Router) {
		r.Use(limit)
		r.Get("/filter-options", cfg.Contacts.FilterOptions)
		r.Get("/contacts", cfg.Contacts.List)
	}
	r.Group(api)
	r.Route("/api", api)

	return r
}
