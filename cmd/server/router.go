package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tablestakes/proforma-api/internal/api"
	apiMiddleware "github.com/tablestakes/proforma-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	projectionHandler := api.NewProjectionHandler(app.projectionService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/scenarios/{scenarioID}/runs", projectionHandler.RunProjection)
		r.Get("/scenarios/{scenarioID}/runs", projectionHandler.ListScenarioRuns)

		r.Get("/runs/{runID}", projectionHandler.GetRun)
		r.Get("/runs/{runID}/months", projectionHandler.ListRunMonths)
		r.Get("/runs/{runID}/summary", projectionHandler.GetRunSummary)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
