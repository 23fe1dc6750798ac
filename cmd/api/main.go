// Package main is the entry point for the SpendLens analytics API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/spendlens/backend/config"
	"github.com/spendlens/backend/internal/application/usecase/forecast"
	"github.com/spendlens/backend/internal/application/usecase/insight"
	"github.com/spendlens/backend/internal/domain/valueobject"
	"github.com/spendlens/backend/internal/infra/db"
	"github.com/spendlens/backend/internal/infra/scheduler"
	"github.com/spendlens/backend/internal/infra/server/router"
	"github.com/spendlens/backend/internal/integration/adapters"
	"github.com/spendlens/backend/internal/integration/cache"
	"github.com/spendlens/backend/internal/integration/entrypoint/controller"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
	"github.com/spendlens/backend/internal/integration/persistence"
	"github.com/spendlens/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting SpendLens analytics API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.TransactionModel{},
		&model.CategoryModel{},
		&model.BudgetModel{},
		&model.InsightModel{},
		&model.ForecastResultModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Initialize Redis connection
	redisClient, err := db.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Error("Redis connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	// Create repositories and adapters
	transactionRepo := persistence.NewTransactionRepository(database.DB())
	categoryRepo := persistence.NewCategoryRepository(database.DB())
	budgetRepo := persistence.NewBudgetRepository(database.DB())
	insightRepo := persistence.NewInsightRepository(database.DB())
	forecastRepo := persistence.NewForecastRepository(database.DB())
	resultCache := cache.NewRedisCache(redisClient)
	tokenVerifier := adapters.NewTokenVerifier(cfg.JWT.Secret)

	tuning := valueobject.DefaultTuning()

	// Create forecast use cases
	generateForecastUseCase := forecast.NewGenerateForecastUseCase(transactionRepo, forecastRepo, resultCache, tuning)
	getCategoryForecastUseCase := forecast.NewGetCategoryForecastUseCase(transactionRepo, categoryRepo, resultCache, tuning)

	// Create insight use cases
	generateInsightsUseCase := insight.NewGenerateInsightsUseCase(
		insight.DefaultRules(),
		insightRepo,
		transactionRepo,
		budgetRepo,
		categoryRepo,
		resultCache,
		tuning,
	)
	getInsightsUseCase := insight.NewGetInsightsUseCase(insightRepo, resultCache)
	markReadUseCase := insight.NewMarkReadUseCase(insightRepo, resultCache)
	dismissUseCase := insight.NewDismissUseCase(insightRepo, resultCache)

	// Create controllers and middleware
	healthController := controller.NewHealthController(database.HealthCheck, db.RedisHealthCheck(redisClient))
	forecastController := controller.NewForecastController(generateForecastUseCase, getCategoryForecastUseCase)
	insightController := controller.NewInsightController(
		generateInsightsUseCase,
		getInsightsUseCase,
		markReadUseCase,
		dismissUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenVerifier)

	// Start the daily insight sweep
	if cfg.Scheduler.InsightSweepEnabled {
		sweep := scheduler.NewScheduler(transactionRepo, generateInsightsUseCase)
		if err := sweep.Register(cfg.Scheduler.InsightSweepCron); err != nil {
			slog.Error("Failed to register insight sweep", "error", err)
			os.Exit(1)
		}
		sweep.Start()
		defer sweep.Stop()

		// Catch up immediately after a deploy instead of waiting for the
		// next scheduled run.
		if cfg.Scheduler.InsightSweepOnStart {
			go sweep.RunSweepNow()
		}
	}

	// Setup router
	r := router.NewRouter(healthController, forecastController, insightController, authMiddleware)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
