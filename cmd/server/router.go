package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/api"
	apiMiddleware "github.com/bashlor/Rapid-Work-Tracker-sub000/internal/api/middleware"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/metrics"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(app.collector.Middleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	domainHandler := api.NewDomainHandler(app.domainService)
	taskHandler := api.NewTaskHandler(app.taskService)
	sessionHandler := api.NewSessionHandler(app.sessionService)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Domain and sub-domain endpoints
			r.Post("/domains", domainHandler.Create)
			r.Get("/domains", domainHandler.List)
			r.Put("/domains/{domainID}", domainHandler.Edit)
			r.Delete("/domains/{domainID}", domainHandler.Delete)
			r.Post("/domains/{domainID}/sub-domains", domainHandler.CreateSubDomain)
			r.Put("/sub-domains/{subDomainID}", domainHandler.UpdateSubDomain)
			r.Delete("/sub-domains/{subDomainID}", domainHandler.DeleteSubDomain)

			// Task endpoints
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/{taskID}", taskHandler.Get)
			r.Put("/tasks/{taskID}", taskHandler.Update)
			r.Delete("/tasks/{taskID}", taskHandler.Delete)

			// Session endpoints
			r.Post("/sessions", sessionHandler.Create)
			r.Get("/sessions", sessionHandler.List)
			r.Put("/sessions", sessionHandler.UpdateMany)
			r.Patch("/sessions/{sessionID}", sessionHandler.Update)
			r.Delete("/sessions/{sessionID}", sessionHandler.Delete)

			// Live tracking endpoints
			r.Post("/tracking/start", sessionHandler.StartTracking)
			r.Post("/tracking/stop", sessionHandler.StopTracking)
			r.Get("/tracking/current", sessionHandler.CurrentTracking)

			// Dashboard endpoint
			r.Get("/dashboard/week", dashboardHandler.WeekReport)
		})
	})

	// Prometheus scrape endpoint
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
