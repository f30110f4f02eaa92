package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tablestakes/proforma-api/internal/config"
	"github.com/tablestakes/proforma-api/internal/engine"
	"github.com/tablestakes/proforma-api/internal/platform/postgres"
	"github.com/tablestakes/proforma-api/internal/service"
)

// application holds the fully wired dependency graph.
type application struct {
	config            *config.Config
	logger            *slog.Logger
	db                *sql.DB
	projectionService service.ProjectionService
}

// newApplication wires stores, engine, and services into a runnable
// application.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}

	assumptionStore := postgres.NewPostgresAssumptionStore(db, logger)
	calcRunStore := postgres.NewPostgresCalcRunStore(db, logger)
	summaryStore := postgres.NewPostgresSummaryStore(db, logger)

	ledger := service.NewRunLedgerAdapter(calcRunStore, summaryStore)
	projectionEngine := engine.New(ledger, logger)

	projectionService, err := service.NewProjectionService(
		assumptionStore,
		calcRunStore,
		summaryStore,
		projectionEngine,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create projection service: %w", err)
	}

	logger.Info("application initialized", "engine_version", engine.Version)

	return &application{
		config:            cfg,
		logger:            logger,
		db:                db,
		projectionService: projectionService,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}
