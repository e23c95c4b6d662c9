// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	router "github.com/sanjaybh2003/PayTabs-Assignment/internal/api"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/api/handler"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/config"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/repository"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/repository/postgres"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/seed"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/service"
	"github.com/sanjaybh2003/PayTabs-Assignment/internal/util"
	"github.com/sanjaybh2003/PayTabs-Assignment/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	CardRepository        repository.CardRepository
	TransactionRepository repository.TransactionRepository

	// Services
	ProcessorService service.ProcessorService
	GatewayService   service.GatewayService
	QueryService     service.QueryService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.CardRepository = postgres.NewCardRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Provision seed data when requested
	if app.Config.SeedData {
		if err := seed.Run(ctx, app.DB, app.CardRepository, app.Logger); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db.
	now := func() time.Time { return time.Now().UTC() }
	app.ProcessorService = service.NewProcessorService(
		app.DB, // This is the DBTxBeginner
		app.CardRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
		now,
	)
	app.GatewayService = service.NewGatewayService(
		app.ProcessorService,
		app.DB, // This is the DBExecutor for gateway-level ledger appends
		app.TransactionRepository,
		app.Logger,
		now,
	)
	app.QueryService = service.NewQueryService(app.DB, app.CardRepository, app.TransactionRepository)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	transactionHandler := handler.NewTransactionHandler(app.GatewayService, app.Logger)
	queryHandler := handler.NewQueryHandler(app.QueryService, app.Logger)
	app.HTTPHandler = router.NewRouter(transactionHandler, queryHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
