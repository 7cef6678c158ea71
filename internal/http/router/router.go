package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rogerio-castellano/sourcing-desk/internal/http/handlers"
	mw "github.com/rogerio-castellano/sourcing-desk/internal/http/middleware"
	rl "github.com/rogerio-castellano/sourcing-desk/internal/http/rate_limiter"
)

// NewRouter builds the demo dashboard API. A nil visitors disables rate limiting.
func NewRouter(visitors *rl.Visitors) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))

	r.Get("/health", handlers.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		if visitors != nil {
			r.Use(mw.RateLimit(visitors))
		}
		r.Get("/dashboard", handlers.GetDashboardHandler)
		r.Put("/dashboard", handlers.PutDashboardHandler)
		r.Get("/dashboard/metrics", handlers.GetDashboardMetricsHandler)
		r.Post("/inventory/{id}/confirm", handlers.ConfirmOfferHandler)
	})
	return r
}
