package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/stockflow-console/config"
	"github.com/fekuna/stockflow-console/internal/client"
	"github.com/fekuna/stockflow-console/internal/database/postgres"
	"github.com/fekuna/stockflow-console/internal/inventory"
	"github.com/fekuna/stockflow-console/internal/logger"
	"github.com/fekuna/stockflow-console/internal/notify"
	"github.com/fekuna/stockflow-console/internal/product"

	invRepoPkg "github.com/fekuna/stockflow-console/internal/inventory/repository"
	invUCPkg "github.com/fekuna/stockflow-console/internal/inventory/usecase"

	prodH "github.com/fekuna/stockflow-console/internal/product/handler"
	prodRepoPkg "github.com/fekuna/stockflow-console/internal/product/repository"
	prodUCPkg "github.com/fekuna/stockflow-console/internal/product/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Select the product backend
	var (
		products product.Client
		alerts   inventory.AlertSource
	)

	switch cfg.Server.Backend {
	case config.BackendPostgres:
		db, err := postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

		products = prodRepoPkg.NewPGRepository(db)
		alerts = invRepoPkg.NewPGRepository(db)
	case config.BackendHTTP:
		apiClient := client.New(cfg.API.BaseURL, appLogger)
		appLogger.Info("Using StockFlow API", zap.String("base_url", cfg.API.BaseURL))

		products = apiClient
		alerts = apiClient
	default:
		appLogger.Fatal("Unknown products backend", zap.String("backend", cfg.Server.Backend))
	}

	// 4. Initialize Notifier and Prompter
	notifier := notify.WithLogging(notify.NewTerminal(os.Stdout), appLogger)
	prompter := prodH.NewPrompter(os.Stdin, os.Stdout)

	// 5. Initialize UseCases
	prodUC := prodUCPkg.NewProductUseCase(products, notifier, prompter.Confirm, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(alerts, notifier, appLogger)

	// 6. Initialize Handler
	console := prodH.NewConsoleHandler(prodUC, invUC, prompter, os.Stdout, notifier, appLogger)

	// 7. Run until quit or signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := console.Run(ctx); err != nil && ctx.Err() == nil {
		appLogger.Error("Console stopped", zap.Error(err))
	}
	appLogger.Info("Bye")
}
