//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/migrate"
	"fulfillment/internal/pkg/postgres"
	"fulfillment/pkg/logger/zap_adapter"
	"fulfillment/pkg/querier"
	"fulfillment/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	poolInstance *pgxpool.Pool
	poolOnce     sync.Once
)

// dsn берет базу из POSTGRES_* (make test-integration),
// иначе поднимает контейнер postgres.
func dsn(ctx context.Context) (string, error) {
	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		return postgres.NewDSN(&config.Database{
			Host:     host,
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}), nil
	}

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("fulfillment"),
		tcpostgres.WithUsername("fulfillment"),
		tcpostgres.WithPassword("fulfillment"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	return container.ConnectionString(ctx, "sslmode=disable")
}

func GetPool() *pgxpool.Pool {
	poolOnce.Do(func() {
		ctx := context.Background()

		zapLogger, err := zap_adapter.NewZapAdapter()
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		connString, err := dsn(ctx)
		if err != nil {
			panic(err)
		}

		pool, err := postgres.NewConnPoolFromDSN(ctx, zapLogger, connString)
		if err != nil {
			panic(err)
		}

		if err := migrate.Up(ctx, pool); err != nil {
			panic(err)
		}

		poolInstance = pool
	})

	return poolInstance
}

func GetQuerier() *querier.Querier {
	return querier.New(GetPool(), pgxv5.DefaultCtxGetter)
}

func GetTxManager() *tx.Manager {
	return tx.New(GetPool())
}

func SetupDB(t *testing.T, setupSql string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE fanout_deliveries, transition_events, reservations, stock_levels,
			deliveries, sale_items, sales RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}
