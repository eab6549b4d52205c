package kafka

import (
	"context"
	"fmt"

	"fulfillment/internal/pkg/config"
	"fulfillment/pkg/logger"

	"github.com/IBM/sarama"
)

// NewProducerConfig конфиг идемпотентного producer. Подтверждение ждем от всех реплик,
// ключ сообщения определяет партицию.
func NewProducerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	version, err := parseVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, err
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = version
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	// идемпотентному producer нужна одна запись в полете
	saramaConfig.Net.MaxOpenRequests = 1

	return saramaConfig, nil
}

func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (sarama.SyncProducer, error) {
	saramaConfig, err := NewProducerConfig(cfg)
	if err != nil {
		return nil, err
	}

	brokers := cfg.BrokerList()
	kafkaLog := log.With(logger.NewField("brokers", brokers))

	if err := waitBrokers(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, err
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create sync producer: %w", err)
	}

	kafkaLog.Info("kafka producer created")
	return producer, nil
}
