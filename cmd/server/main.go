// Package main implements the entry point for the courtflow API
// server, which manages court case records and runs the hearing
// auto-scheduling engine.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"

	"github.com/casemadad/courtflow/internal/config"
	"github.com/casemadad/courtflow/internal/platform/logger"
	"github.com/casemadad/courtflow/internal/platform/postgres"
	"github.com/casemadad/courtflow/internal/service/auth"
	"github.com/casemadad/courtflow/internal/service/scheduling"
	"github.com/casemadad/courtflow/internal/service/similarity"
	"github.com/casemadad/courtflow/internal/store"
)

// application bundles the server's long-lived dependencies. It is
// assembled once at startup and threaded through router and server
// setup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	caseStore     store.CaseStore
	documentStore store.DocumentStore

	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	schedulingService scheduling.Service
	similarityService similarity.Service
}

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(context.Background(), router); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		app.cleanup()
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, connects to the
// database, runs migrations and wires up stores and services.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		closeQuietly(db, appLogger)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, appLogger)
	caseStore := postgres.NewPostgresCaseStore(db, appLogger)
	documentStore := postgres.NewPostgresDocumentStore(db, appLogger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeQuietly(db, appLogger)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            appLogger,
		db:                db,
		userStore:         userStore,
		caseStore:         caseStore,
		documentStore:     documentStore,
		jwtService:        jwtService,
		passwordVerifier:  auth.NewBcryptVerifier(),
		schedulingService: scheduling.NewService(caseStore, appLogger),
		similarityService: similarity.NewService(caseStore, appLogger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeQuietly(app.db, app.logger)
}

func closeQuietly(db *sql.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close database connection", "error", err)
	}
}
