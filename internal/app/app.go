package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"dtxcli/internal/config"
	"dtxcli/internal/errors"
	"dtxcli/internal/infrastructure"
	custommiddleware "dtxcli/internal/middleware"
	"dtxcli/internal/services"
	handlers "dtxcli/internal/transport/http"
)

const (
	// Version identifies the build in health responses and startup logs.
	Version = "1.0.0"
	AppName = "DTX Pulse - Digital Transformation Index Dashboard"
)

// Application is the main application container.
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	DashboardService *services.DashboardService
	Logger           *slog.Logger
	ErrorHandler     *errors.ErrorHandler
}

// NewApplication creates a new application instance with its dependencies
// wired: configuration, logger, dashboard service, and router.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)
	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Any("data_files", cfg.Data.Files))

	app := &Application{
		Config:           cfg,
		Logger:           logger,
		ErrorHandler:     errors.NewErrorHandler(logger, cfg.Logging.Development),
		DashboardService: services.NewDashboardService(cfg, logger),
	}

	app.setupRouter()
	app.createServer()
	return app, nil
}

// setupRouter configures the middleware stack and mounts all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.RequestLogger(a.Logger))
	r.Use(custommiddleware.Metrics)
	r.Use(custommiddleware.Recoverer(a.ErrorHandler))
	r.Use(chimiddleware.Timeout(a.Config.Server.RequestTimeout))
	r.Use(custommiddleware.RateLimit(a.Config.Security.RateLimit))

	if a.Config.Security.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   a.Config.Security.AllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, a.ErrorHandler, a.Config.Data.Files)
	r.Mount("/api/dashboard", dashboardHandler.Routes())
	r.Mount("/", handlers.NewHealthHandler(Version).Routes())

	a.Router = r
}

// createServer builds the HTTP server from the configuration.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown. SIGINT/SIGTERM
// trigger a graceful shutdown bounded by the configured timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.Logger.Info("server stopped")
	return nil
}
