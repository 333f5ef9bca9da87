package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/config"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/metrics"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/platform/postgres"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/service"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/service/auth"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore      store.UserStore
	domainStore    store.DomainStore
	subDomainStore store.SubDomainStore
	taskStore      store.TaskStore
	sessionStore   store.SessionStore

	// Services
	jwtService       auth.JWTService
	userService      service.UserService
	domainService    service.DomainService
	taskService      service.TaskService
	sessionService   service.SessionService
	dashboardService service.DashboardService

	// Monitoring
	registry  *prometheus.Registry
	collector *metrics.Collector
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.registry = prometheus.NewRegistry()
	app.collector = metrics.NewCollector(app.registry)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.domainStore = postgres.NewPostgresDomainStore(db, logger)
	app.subDomainStore = postgres.NewPostgresSubDomainStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)

	app.userService = service.NewUserService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		logger,
	)
	app.domainService = service.NewDomainService(
		app.domainStore,
		app.subDomainStore,
		app.taskStore,
		db,
		logger,
	)
	app.taskService = service.NewTaskService(
		app.taskStore,
		app.domainStore,
		app.subDomainStore,
		logger,
	)
	app.sessionService = service.NewSessionService(
		app.sessionStore,
		app.taskStore,
		db,
		app.collector,
		logger,
	)
	app.dashboardService = service.NewDashboardService(
		app.userStore,
		app.domainStore,
		app.subDomainStore,
		app.taskStore,
		app.sessionStore,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
