package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fekuna/inventory-catalog/config"
	"github.com/fekuna/inventory-catalog/internal/alert"
	"github.com/fekuna/inventory-catalog/internal/catalog/repository"
	"github.com/fekuna/inventory-catalog/internal/catalog/usecase"
	"github.com/fekuna/inventory-catalog/internal/notify"
	"github.com/fekuna/inventory-catalog/pkg/database/sqlite"
	"github.com/fekuna/inventory-catalog/pkg/logger"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.App.AppEnv == "dev" || cfg.App.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Open the catalog store
	db, err := sqlite.NewSQLite(&sqlite.Config{Path: cfg.SQLite.Path})
	if err != nil {
		appLogger.Fatal("Could not open catalog store", zap.Error(err))
	}
	defer db.Close()
	appLogger.Debug("Opened catalog store", zap.String("path", cfg.SQLite.Path))

	// 4. Wire the catalog
	repo := repository.NewSQLiteRepository(db)
	bus := notify.NewBus(appLogger)

	strategies := alert.NewCatalog(
		alert.NewFixedThreshold(cfg.Alert.FixedThreshold),
		alert.NewReorderPoint(cfg.Alert.ReorderPoint, cfg.Alert.SafetyStock),
		alert.NewPerProductThreshold(cfg.Alert.PerProductDefault),
	)

	uc, err := usecase.NewCatalogUseCase(
		context.Background(),
		repo,
		bus,
		strategies,
		defaultStrategy(cfg),
		cfg.App.RootName,
		appLogger,
	)
	if err != nil {
		appLogger.Fatal("Could not initialize catalog", zap.Error(err))
	}

	// 5. Run the requested command
	if err := newRootCmd(uc).Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultStrategy(cfg *config.Config) alert.Strategy {
	switch cfg.Alert.DefaultStrategy {
	case "reorder":
		return alert.NewReorderPoint(cfg.Alert.ReorderPoint, cfg.Alert.SafetyStock)
	case "per-product":
		return alert.NewPerProductThreshold(cfg.Alert.PerProductDefault)
	default:
		return alert.NewFixedThreshold(cfg.Alert.FixedThreshold)
	}
}
