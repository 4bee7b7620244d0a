package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/casemadad/courtflow/internal/api"
	apimiddleware "github.com/casemadad/courtflow/internal/api/middleware"
)

// setupRouter creates the application router and registers all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	caseHandler := api.NewCaseHandler(app.caseStore, app.documentStore, app.logger)
	scheduleHandler := api.NewScheduleHandler(
		app.schedulingService,
		app.config.Scheduling,
		app.logger,
	)
	similarHandler := api.NewSimilarHandler(app.similarityService, app.logger)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Case endpoints
			r.Post("/cases", caseHandler.Create)
			r.Get("/cases", caseHandler.List)
			r.Get("/cases/{id}", caseHandler.Get)
			r.Put("/cases/{id}", caseHandler.Update)
			r.Delete("/cases/{id}", caseHandler.Delete)
			r.Get("/cases/{id}/documents", caseHandler.ListDocuments)
			r.Get("/cases/{caseID}/similar", similarHandler.Similar)

			// Scheduling endpoints
			r.Get("/scheduling/auto-schedule", scheduleHandler.AutoSchedule)
			r.Post("/scheduling/apply-schedule", scheduleHandler.ApplySchedule)
			r.Get("/scheduling/my-schedule", scheduleHandler.MySchedule)
			r.Put("/scheduling/reschedule/{caseID}", scheduleHandler.Reschedule)
		})
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
