package app

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pcnportal/internal/blobstore"
	"pcnportal/internal/config"
	apierrors "pcnportal/internal/errors"
	"pcnportal/internal/infrastructure"
	"pcnportal/internal/ingestion"
	customMiddleware "pcnportal/internal/middleware"
	"pcnportal/internal/services"
	"pcnportal/internal/storage"
	handlers "pcnportal/internal/transport/http"
)

const (
	VERSION = "1.0.0"
	AppName = "PCN Portal"
)

var (
	// BuildTime is set at compile time
	BuildTime = time.Now().Format(time.RFC3339)
	// BuildID is a unique identifier for this build
	BuildID = generateBuildID()
)

func generateBuildID() string {
	h := sha256.New()
	h.Write([]byte(VERSION))
	h.Write([]byte(time.Now().Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	DB            *storage.DB
	BlobStore     blobstore.Store
	Penalties     *storage.PenaltyRepo
	IngestService *ingestion.Service
	HealthService *services.HealthService
	Logger        *slog.Logger
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initializeServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, a.Config.Database.ConnectTimeout)
	defer cancel()

	db, err := storage.Connect(connectCtx, a.Config.Database.DSN, a.Config.Database.MaxConns, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db

	if a.Config.Database.MigrateOnStart {
		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	blobs, err := blobstore.NewAzureStore(ctx, a.Config.Storage.ConnectionString, a.Config.Storage.Container, infrastructure.WithComponent(a.Logger, "blobstore"))
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	a.BlobStore = blobs

	a.Penalties = storage.NewPenaltyRepo(db)
	a.IngestService = ingestion.NewService(blobs, a.Penalties, func(err error) bool {
		return errors.Is(err, storage.ErrNotFound)
	}, infrastructure.WithComponent(a.Logger, "ingestion"))

	a.HealthService = services.NewHealthServiceWithBuildInfo(
		VERSION,
		BuildTime,
		BuildID,
		db,
		blobs,
		a.Logger,
	)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(a.getCORSConfig()))

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	a.setupAPIRoutes(r)

	// Prometheus endpoint stays outside the JSON content-type group
	r.Handle("/metrics", promhttp.Handler())

	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	penaltyHandler := handlers.NewPenaltyHandler(
		a.IngestService,
		a.Penalties,
		a.Config.Storage.LookupFile,
		a.Config.Ingest.MaxUploadBytes,
		a.Logger,
		errorHandler,
	)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		// Upload and bulk ingestion can outlive the standard request budget
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
			r.Mount("/penalties", penaltyHandler.Routes())
		})

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

			r.Get("/files", penaltyHandler.ListFiles)

			r.Get("/health", healthHandler.HealthCheck)
			r.Get("/health/ready", healthHandler.ReadinessCheck)
			r.Get("/health/live", healthHandler.LivenessCheck)
			r.Get("/version", healthHandler.Version)
		})
	})
}

// getCORSConfig returns CORS configuration based on environment
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	cfg := customMiddleware.CORSConfig{
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           300,
		Logger:           a.Logger,
	}

	cfg.AllowedOrigins = []string{
		fmt.Sprintf("http://localhost:%d", a.Config.Server.Port),
		fmt.Sprintf("http://127.0.0.1:%d", a.Config.Server.Port),
	}
	if a.Config.Security.EnableCORS && len(a.Config.Security.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, a.Config.Security.AllowedOrigins...)
	}

	a.Logger.Info("CORS configured",
		slog.Any("allowed_origins", cfg.AllowedOrigins))

	return cfg
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the application
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.DB != nil {
		a.DB.Close()
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	infrastructure.CloseLogFile()
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
