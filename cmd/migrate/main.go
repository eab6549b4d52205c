package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"

	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/migrate"
	"fulfillment/internal/pkg/postgres"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/logger/zap_adapter"

	"github.com/joho/godotenv"
)

func main() {
	down := flag.Bool("down", false, "Roll back the last migration instead of applying all pending ones")
	flag.Parse()

	zapLogger, err := zap_adapter.NewZapAdapter(
		zap_adapter.WithLevel(os.Getenv("LOG_LEVEL")),
		zap_adapter.WithService("fulfillment-migrate"),
	)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var log logger.Logger = zapLogger

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", logger.NewField("error", err))
		return
	}
	if cfg.Storage.Driver != config.StoragePostgres {
		log.Warn("STORAGE_DRIVER is not postgres, nothing to migrate",
			logger.NewField("storage", cfg.Storage.Driver),
		)
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		log.Error("database", logger.NewField("error", err))
		return
	}
	defer pool.Close()

	if *down {
		err = migrate.Down(ctx, pool)
	} else {
		err = migrate.Up(ctx, pool)
	}
	if err != nil {
		log.Error("migration failed", logger.NewField("error", err))
		return
	}
	log.Info("migrations applied", logger.NewField("down", *down))
}
