package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/RemitWise-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/RemitWise-Backend/internal/api/middleware"
	"github.com/ndewijer/RemitWise-Backend/internal/config"
	"github.com/ndewijer/RemitWise-Backend/internal/service"
	"github.com/ndewijer/RemitWise-Backend/internal/tracking"
)

// Services bundles the service layer the router dispatches to.
type Services struct {
	System     *service.SystemService
	Comparison *service.ComparisonService
	Affiliate  *service.AffiliateService
	Click      *service.ClickService
	Admin      *service.AdminService
	Signer     *tracking.Signer
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, logger *zap.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/comparison", func(r chi.Router) {
			comparisonHandler := handlers.NewComparisonHandler(services.Comparison)
			r.With(custommiddleware.ClientID).Post("/", comparisonHandler.Compare)
		})

		r.Route("/affiliate-link", func(r chi.Router) {
			affiliateHandler := handlers.NewAffiliateHandler(services.Affiliate)
			r.Get("/", affiliateHandler.AffiliateLinks)
			r.Post("/", affiliateHandler.CreateAffiliateLink)
			r.Get("/match", affiliateHandler.MatchAffiliateLink)
			r.Put("/{id}", affiliateHandler.UpdateAffiliateLink)
		})

		r.Route("/click", func(r chi.Router) {
			clickHandler := handlers.NewClickHandler(services.Click, services.Signer, logger)
			r.Post("/", clickHandler.TrackClick)
			r.Get("/{token}", clickHandler.Redirect)
		})

		r.Route("/admin", func(r chi.Router) {
			adminHandler := handlers.NewAdminHandler(services.Admin, services.Click)
			r.Get("/stats", adminHandler.Stats)
			r.Get("/dashboard", adminHandler.Dashboard)
		})
	})

	return r
}
