package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hearthwood/site/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler for the site backend.
//
// Middleware chain (applied in order):
//  1. WithMetrics(registry)          — request counters and latency
//  2. WithRequestLogging(logger)     — logs each request
//  3. gate.Handler                   — route classification + access decisions
//
// Every route below the gate falls into one of its classes; public routes
// pass through it untouched and without identity lookups.
func NewRouter(
	gate *middleware.Gate,
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	adminProducts *AdminProductHandler,
	contentHandler *ContentHandler,
	logger *zap.Logger,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithMetrics(registry))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(gate.Handler)

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Gated pages
	r.Get("/auth", LoginPage)
	r.Get("/admin/dashboard", DashboardPage)
	r.Get("/auth/dashboard", DashboardPage)

	// Auth operations. Registered flat rather than under a /auth subrouter
	// so the login page above keeps the bare /auth pattern.
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)
	r.Get("/auth/me", authHandler.Me)

	// Public read API
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogHandler.List)
		r.Get("/products/{id}", catalogHandler.Get)
		r.Get("/facets", catalogHandler.Facets)
		r.Get("/testimonials", contentHandler.Testimonials)
		r.Get("/projects", contentHandler.Projects)
		r.Get("/faqs", contentHandler.FAQs)
		r.Get("/hero", contentHandler.Hero)
		r.Get("/company", contentHandler.Company)
		r.Post("/contact", contentHandler.Contact)

		// Protected admin CMS API: the gate guarantees an identity and the
		// forwarded identity header before any of these run.
		r.Route("/protected", func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))

			r.Get("/products", adminProducts.List)
			r.Post("/products", adminProducts.Create)
			r.Put("/products/{id}", adminProducts.Update)
			r.Delete("/products/{id}", adminProducts.Delete)
			r.Patch("/products/{id}/featured", adminProducts.Feature)

			r.Post("/testimonials", contentHandler.CreateTestimonial)
			r.Put("/testimonials/{id}", contentHandler.UpdateTestimonial)
			r.Delete("/testimonials/{id}", contentHandler.DeleteTestimonial)

			r.Post("/projects", contentHandler.CreateProject)
			r.Put("/projects/{id}", contentHandler.UpdateProject)
			r.Delete("/projects/{id}", contentHandler.DeleteProject)

			r.Post("/faqs", contentHandler.CreateFAQ)
			r.Put("/faqs/{id}", contentHandler.UpdateFAQ)
			r.Delete("/faqs/{id}", contentHandler.DeleteFAQ)

			r.Post("/hero/upload", contentHandler.UploadHero)
			r.Delete("/hero/{id}", contentHandler.DeleteHero)

			r.Put("/company", contentHandler.SaveCompany)
		})
	})

	return r
}
