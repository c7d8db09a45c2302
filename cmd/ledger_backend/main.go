package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	"github.com/financora/ledger_backend/internal/core/services"
	"github.com/financora/ledger_backend/internal/handlers"
	"github.com/financora/ledger_backend/internal/middleware"
	"github.com/financora/ledger_backend/internal/platform/config"
	"github.com/financora/ledger_backend/internal/repositories/database/pgsql"
	"github.com/financora/ledger_backend/internal/repositories/memory"
	"github.com/financora/ledger_backend/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup := buildRepositories(cfg, logger)
	defer cleanup()

	serviceContainer := services.NewServiceContainer(cfg, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("storage_driver", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories selects the storage driver: Postgres with migrations
// applied, or the in-memory store for demo runs.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (*portsrepo.RepositoryContainer, func()) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Info("Using in-memory storage driver (demo mode); data will not survive a restart")
		store := memory.NewStore()
		seedDemoRates(store)
		return memory.NewRepositoryContainer(store), func() {}
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database connection pool established")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	return pgsql.NewRepositoryContainer(dbPool), dbPool.Close
}

// runMigrations applies all pending up migrations from the migrations
// directory over a short-lived database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil {
		return sourceErr
	} else if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied successfully")
	}
	return nil
}

// seedDemoRates gives the demo store the conversion rates the balance
// snapshot needs. The Postgres driver seeds these through migrations.
func seedDemoRates(store *memory.Store) {
	store.SeedRate("USD", "INR", decimal.RequireFromString("83.90"))
	store.SeedRate("EUR", "INR", decimal.RequireFromString("97.45"))
	store.SeedRate("GBP", "INR", decimal.RequireFromString("113.70"))
	store.SeedRate("INR", "USD", decimal.RequireFromString("0.0119"))
}
