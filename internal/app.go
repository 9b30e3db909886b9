// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	router "fintrack/internal/api"
	"fintrack/internal/api/handler"
	"fintrack/internal/config"
	"fintrack/internal/events"
	"fintrack/internal/repository"
	"fintrack/internal/repository/memory"
	"fintrack/internal/repository/postgres"
	"fintrack/internal/repository/sqlite"
	"fintrack/internal/service"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger

	TransactionRepository repository.TransactionRepository
	Publisher             events.Publisher

	TransactionService service.TransactionService

	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize loads the configuration from the environment and wires every component.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return app.InitializeWithConfig(ctx, cfg)
}

// InitializeWithConfig wires every component from an already loaded configuration.
func (app *Application) InitializeWithConfig(ctx context.Context, cfg *config.AppConfig) error {
	app.Config = cfg

	// 1. Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.",
		"storage_backend", cfg.StorageBackend,
		"events_enabled", cfg.AMQP.URL != "")

	// 2. Storage
	repo, err := newRepository(cfg, app.Logger)
	if err != nil {
		return err
	}
	app.TransactionRepository = repo
	app.Logger.Info("Transaction store initialized.", "backend", cfg.StorageBackend)

	// 3. Event publisher
	if cfg.AMQP.URL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP broker: %w", err)
		}
		app.Publisher = publisher
	} else {
		app.Publisher = events.NopPublisher{}
	}

	// 4. Services
	app.TransactionService = service.NewTransactionService(app.TransactionRepository, app.Publisher, app.Logger)

	// 5. HTTP handlers and router
	transactionHandler := handler.NewTransactionHandler(app.TransactionService, app.Logger)
	app.HTTPHandler = router.NewRouter(transactionHandler, app.Logger, cfg.RequestTimeout)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

func newRepository(cfg *config.AppConfig, logger *slog.Logger) (repository.TransactionRepository, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		if cfg.MigrateOnStart {
			if err := db.RunMigrations(db.DialectPostgres, cfg.DB.DSN()); err != nil {
				return nil, fmt.Errorf("failed to migrate PostgreSQL schema: %w", err)
			}
			logger.Info("PostgreSQL schema is up to date.")
		}
		database, err := db.NewPostgresDB(cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewTransactionRepository(database), nil

	case config.BackendSQLite:
		database, err := db.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if cfg.MigrateOnStart {
			if err := db.RunMigrations(db.DialectSQLite, cfg.SQLitePath); err != nil {
				database.Close()
				return nil, fmt.Errorf("failed to migrate SQLite schema: %w", err)
			}
			logger.Info("SQLite schema is up to date.")
		}
		return sqlite.NewTransactionRepository(database), nil

	default:
		return memory.NewTransactionRepository(), nil
	}
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			app.Logger.Error("Failed to close event publisher", "error", err)
		}
	}
	if app.TransactionRepository != nil {
		if err := app.TransactionRepository.Close(); err != nil {
			app.Logger.Error("Failed to close transaction store", "error", err)
			return fmt.Errorf("failed to close transaction store: %w", err)
		}
		app.Logger.Info("Transaction store closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
