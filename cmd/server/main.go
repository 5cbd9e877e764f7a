package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heinrichwest/Personal-budget-sub000/internal/config"
	"github.com/heinrichwest/Personal-budget-sub000/internal/database"
	"github.com/heinrichwest/Personal-budget-sub000/internal/handlers"
	custommw "github.com/heinrichwest/Personal-budget-sub000/internal/middleware"
	"github.com/heinrichwest/Personal-budget-sub000/internal/repositories"
	"github.com/heinrichwest/Personal-budget-sub000/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Server.Environment == "development" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := runMigrations(cfg); err != nil {
		slog.Error("Failed to run migrations", "error", err.Error())
		os.Exit(1)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Server.Environment == "development" {
		if err := db.AutoMigrate(); err != nil {
			slog.Error("Failed to auto-migrate schema", "error", err.Error())
			os.Exit(1)
		}
	}

	// Repositories
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	ruleRepo := repositories.NewMappingRuleRepository(db.DB)
	categoryRepo := repositories.NewBudgetCategoryRepository(db.DB)

	if err := ruleRepo.SeedSystemRules(database.DefaultSystemRules()); err != nil {
		slog.Error("Failed to seed system rules", "error", err.Error())
		os.Exit(1)
	}

	// Services
	catLogger := services.NewCategorizationLogger(logger)
	metrics := services.NewPrometheusMetrics()
	categoryResolver := services.NewCategoryResolverService(categoryRepo)
	ruleResolver := services.NewRuleResolverService(ruleRepo)
	categorization := services.NewCategorizationService(
		transactionRepo, ruleResolver, categoryResolver, catLogger, metrics, cfg.Batch.CommitLimit)
	reapplication := services.NewReapplicationService(
		transactionRepo, ruleRepo, categoryResolver, catLogger, metrics, cfg.Batch.CommitLimit)

	classifier, err := services.NewGeminiClassifier(context.Background(), cfg.Classifier.Model)
	if err != nil {
		slog.Error("Failed to create classifier", "error", err.Error())
		os.Exit(1)
	}
	suggestions := services.NewSuggestionService(
		transactionRepo, categoryRepo, ruleRepo, classifier, catLogger, metrics,
		cfg.Classifier.ChunkSize, cfg.Batch.CommitLimit)

	// Handlers
	healthHandler := handlers.NewHealthCheckHandler(db.DB)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	ruleHandler := handlers.NewRuleHandler(ruleRepo, reapplication)
	categorizationHandler := handlers.NewCategorizationHandler(categorization)
	suggestionHandler := handlers.NewSuggestionHandler(suggestions)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommw.CustomHTTPErrorHandler

	e.Use(custommw.RequestID())
	e.Use(custommw.PanicRecovery())
	e.Use(custommw.RateLimiter())

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	owner := api.Group("/owners/:ownerId")

	owner.GET("/transactions", transactionHandler.ListTransactions)
	owner.GET("/transactions/:id", transactionHandler.GetTransaction)
	owner.POST("/transactions/import", transactionHandler.ImportTransactions)

	owner.GET("/categories", categoryHandler.ListCategories)
	owner.GET("/categories/:id", categoryHandler.GetCategory)
	owner.POST("/categories", categoryHandler.CreateCategory)

	owner.GET("/rules", ruleHandler.ListRules)
	owner.POST("/rules", ruleHandler.CreateRule)
	owner.PUT("/rules/:id", ruleHandler.UpdateRule)
	owner.DELETE("/rules/:id", ruleHandler.DeleteRule)

	owner.POST("/categorization/unmapped", categorizationHandler.CategorizeUnmapped)
	owner.POST("/categorization/rescan", categorizationHandler.RescanAll)

	owner.POST("/suggestions/run", suggestionHandler.RequestSuggestions)
	owner.GET("/suggestions", suggestionHandler.GetReviewBatch)
	owner.POST("/suggestions/:transactionId/accept", suggestionHandler.AcceptSuggestion)
	owner.POST("/suggestions/:transactionId/reject", suggestionHandler.RejectSuggestion)
	owner.POST("/suggestions/bulk-approve", suggestionHandler.BulkApprove)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		addr := ":" + cfg.Server.Port
		slog.Info("Starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// runMigrations applies schema migrations over a plain database/sql
// connection before gorm takes over
func runMigrations(cfg *config.Config) error {
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	runner := database.NewMigrationRunner(sqlDB)
	if err := runner.WaitForDatabase(); err != nil {
		return err
	}
	return runner.RunMigrations()
}
