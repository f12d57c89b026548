package api

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fonfolio/internal/api/flash"
	"fonfolio/internal/api/handlers"
	custommiddleware "fonfolio/internal/api/middleware"
	"fonfolio/internal/config"
	"fonfolio/internal/service"
)

// NewRouter creates and configures the HTTP router: the HTML dashboard at
// the root and the JSON API under /api/v1.
func NewRouter(
	portfolioService *service.PortfolioService,
	flashes *flash.Jar,
	templates *template.Template,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// HTML pages
	pageHandler := handlers.NewPageHandler(portfolioService, flashes, templates)
	r.Get("/", pageHandler.Index)
	r.Post("/holdings", pageHandler.AddHolding)
	r.Post("/holdings/{row}/delete", pageHandler.DeleteHolding)

	// JSON API
	r.Route("/api/v1", func(r chi.Router) {
		corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
		r.Use(corsMiddleware.Handler)

		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(cfg.Store.Backend)
			r.Get("/health", systemHandler.Health)
		})

		portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
		r.Get("/portfolio", portfolioHandler.Portfolio)
		r.Post("/holdings", portfolioHandler.CreateHolding)
		r.Delete("/holdings/{row}", portfolioHandler.DeleteHolding)
	})

	return r
}
