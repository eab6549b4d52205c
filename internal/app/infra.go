package app

import (
	"context"
	"fmt"

	"fulfillment/internal/gateway/broadcast"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/kafka"
	"fulfillment/internal/pkg/postgres"
	fanoutService "fulfillment/internal/service/fanout"
	"fulfillment/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
)

// OpenStorage хранилище по STORAGE_DRIVER. Возвращаемая функция освобождает ресурсы драйвера.
func OpenStorage(ctx context.Context, log logger.Logger, cfg *config.Config) (*Storage, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		return NewMemoryStorage(), func() {}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		return NewPostgresStorage(pool, pgxv5.DefaultCtxGetter), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewPublisher анонсы в kafka, если заданы брокеры, иначе в лог.
func NewPublisher(ctx context.Context, log logger.Logger, cfg *config.Config) (fanoutService.Publisher, func(), error) {
	if !cfg.Kafka.HasKafka() {
		log.Warn("KAFKA_BROKERS is empty, announcements are written to the log")
		return broadcast.NewLogPublisher(log.With(
			logger.NewField("component", "broadcast"),
		)), func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	closeFn := func() {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close Kafka producer", logger.NewField("error", err))
		}
	}
	return broadcast.NewKafkaPublisher(producer, cfg.Kafka.AnnouncementsTopic, cfg.Kafka.EventsTopic), closeFn, nil
}
