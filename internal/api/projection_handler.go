// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tablestakes/proforma-api/internal/api/shared"
	"github.com/tablestakes/proforma-api/internal/platform/logger"
	"github.com/tablestakes/proforma-api/internal/service"
)

// ProjectionHandler handles projection-run HTTP requests
type ProjectionHandler struct {
	projectionService service.ProjectionService
	logger            *slog.Logger
}

// NewProjectionHandler creates a new ProjectionHandler
func NewProjectionHandler(
	projectionService service.ProjectionService,
	logger *slog.Logger,
) *ProjectionHandler {
	if projectionService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("projectionService cannot be nil for ProjectionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProjectionHandler")
	}

	return &ProjectionHandler{
		projectionService: projectionService,
		logger:            logger.With(slog.String("component", "projection_handler")),
	}
}

// RunProjection handles POST /api/scenarios/{scenarioID}/runs requests.
// It triggers a synchronous projection run for the scenario and returns
// the completed run record with its derived rollup.
func (h *ProjectionHandler) RunProjection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	scenarioID, ok := parseUUIDParam(w, r, "scenarioID")
	if !ok {
		return
	}

	log.Debug("triggering projection run", slog.String("scenario_id", scenarioID.String()))

	result, err := h.projectionService.RunProjection(r.Context(), scenarioID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Projection run failed"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("projection run completed",
		slog.String("scenario_id", scenarioID.String()),
		slog.String("run_id", result.Run.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, projectionResultToResponse(result))
}

// GetRun handles GET /api/runs/{runID} requests.
func (h *ProjectionHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseUUIDParam(w, r, "runID")
	if !ok {
		return
	}

	run, err := h.projectionService.GetRun(r.Context(), runID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, calcRunToResponse(run))
}

// ListRunMonths handles GET /api/runs/{runID}/months requests.
// It returns the persisted monthly series ordered by month index. For
// failed runs the partial series is returned as-is.
func (h *ProjectionHandler) ListRunMonths(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseUUIDParam(w, r, "runID")
	if !ok {
		return
	}

	months, err := h.projectionService.GetMonthlySummaries(r.Context(), runID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]MonthlySummaryResponse, 0, len(months))
	for _, m := range months {
		response = append(response, summaryToResponse(m))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetRunSummary handles GET /api/runs/{runID}/summary requests.
func (h *ProjectionHandler) GetRunSummary(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseUUIDParam(w, r, "runID")
	if !ok {
		return
	}

	summary, err := h.projectionService.GetRunSummary(r.Context(), runID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, runSummaryToResponse(summary))
}

// ListScenarioRuns handles GET /api/scenarios/{scenarioID}/runs requests.
// An optional limit query parameter caps the page size.
func (h *ProjectionHandler) ListScenarioRuns(w http.ResponseWriter, r *http.Request) {
	scenarioID, ok := parseUUIDParam(w, r, "scenarioID")
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.projectionService.ListRuns(r.Context(), scenarioID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := make([]CalcRunResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, calcRunToResponse(run))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// parseUUIDParam extracts and parses a UUID path parameter, writing a
// 400 response on failure.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, name+" is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
