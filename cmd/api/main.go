package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/crop-recommender/config"
	"github.com/dustin/crop-recommender/internal/artifact"
	"github.com/dustin/crop-recommender/internal/crop"
	"github.com/dustin/crop-recommender/internal/history"
	"github.com/dustin/crop-recommender/internal/observability"
	"github.com/dustin/crop-recommender/internal/repository"
	"github.com/dustin/crop-recommender/internal/server"
	"github.com/dustin/crop-recommender/internal/worker"
	"github.com/dustin/crop-recommender/pkg/database"
	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize logger with validation and defaults
	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	appLogger.Info("Starting crop recommender service")

	settings, err := server.ParseSettings(&cfg.Server)
	if err != nil {
		appLogger.Fatal("Invalid server configuration: " + err.Error())
	}
	if settings.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Artifacts are required; there is no degraded mode
	artifacts, err := artifact.Load(&cfg.Artifacts, crop.FeatureCount, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load artifacts: " + err.Error())
	}

	metrics := observability.NewMetrics()
	metrics.ArtifactsLoaded.Set(1)

	clock := clockwork.NewRealClock()

	// Optional prediction history
	historyEnabled, err := history.Enabled(&cfg.History)
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	var (
		recorder       history.Recorder = history.NopRecorder{}
		historyService history.Service
		pruneWorker    *worker.PruneWorker
	)
	if historyEnabled && cfg.JWT.Secret == "" {
		appLogger.Fatal("JWT_SECRET is required when prediction history is enabled")
	}
	if historyEnabled {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			appLogger.Fatal("Failed to connect to database: " + err.Error())
		}
		appLogger.Info("Database connection established")

		if err := repository.Migrate(db); err != nil {
			appLogger.Fatal("Failed to migrate database: " + err.Error())
		}
		appLogger.Info("Database migration completed")

		historyRepo := repository.NewGORMPredictionRepository(db, appLogger)
		recorder = historyRepo

		historyService, err = history.NewService(&cfg.History, historyRepo, clock, metrics, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize history service: " + err.Error())
		}

		pruneWorker, err = worker.NewPruneWorker(&cfg.Worker, historyService, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize prune worker: " + err.Error())
		}

		// Start background processing
		if err := pruneWorker.Start(); err != nil {
			appLogger.Error("Failed to start prune worker: " + err.Error())
		}
	} else {
		appLogger.Info("Prediction history disabled")
	}

	cropService, err := crop.NewService(artifacts, recorder, metrics, clock, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize prediction service: " + err.Error())
	}

	deps := server.Deps{
		ServiceName:    cfg.Logging.ServiceName,
		Artifacts:      artifacts,
		Crop:           cropService,
		History:        historyService,
		JWTSecret:      cfg.JWT.Secret,
		TrustedProxies: settings.TrustedProxies,
		Clock:          clock,
		Logger:         appLogger,
	}
	if pruneWorker != nil {
		deps.Worker = pruneWorker
	}

	router, err := server.NewRouter(deps)
	if err != nil {
		appLogger.Fatal("Failed to build router: " + err.Error())
	}

	srv := server.NewHTTPServer(settings, router)

	// Start server in goroutine for graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server: " + err.Error())
		}
	}()

	appLogger.Info("Server started successfully on port " + settings.Port + " (" + settings.Environment + " environment)")

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop prune worker first
	if pruneWorker != nil {
		if err := pruneWorker.Stop(); err != nil {
			appLogger.Error("Error stopping prune worker: " + err.Error())
		}
	}

	// Shutdown server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown: " + err.Error())
	}

	appLogger.Info("Server shutdown complete")
}
