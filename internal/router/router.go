package router

import (
	"net/http"

	"farmprice/internal/handler"
	"farmprice/internal/metrics"
	"farmprice/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Products *handler.ProductHandler
	Markets  *handler.MarketHandler
	Liked    *handler.LikedHandler
	Sessions *handler.SessionHandler
	Accounts *handler.AccountHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, m *metrics.Metrics, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Applied in order: Recovery -> Logging -> Metrics -> CORS -> APIKeyAuth
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.Sessions.Create)
			r.Get("/current", h.Sessions.Get)
			r.Put("/current/language", h.Sessions.SetLanguage)
			r.Post("/current/onboarding", h.Sessions.CompleteOnboarding)
		})

		r.Get("/products", h.Products.List)
		r.Get("/products/{productID}/markets", h.Products.CompareMarkets)

		r.Get("/markets", h.Markets.List)
		r.Get("/markets/{marketID}/products/{productID}/history", h.Markets.History)

		r.Get("/liked", h.Liked.List)
		r.Put("/liked/{productID}", h.Liked.Like)
		r.Delete("/liked/{productID}", h.Liked.Unlike)

		r.Post("/users/login", h.Accounts.Login)
		r.Post("/users/register", h.Accounts.Register)
		r.Post("/users/logout", h.Accounts.Logout)
	})

	return r
}
