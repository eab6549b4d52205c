package kafka

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/pkg/config"
	"fulfillment/pkg/logger"

	"github.com/IBM/sarama"
)

type Consumer struct {
	log     logger.Logger
	group   sarama.ConsumerGroup
	topics  []string
	handler sarama.ConsumerGroupHandler
}

// NewConsumerConfig конфиг consumer group: читаем с самого старого offset,
// партиции раздаем round-robin.
func NewConsumerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	version, err := parseVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, err
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = version
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = cfg.Sarama.ConsumerOffsetsAutocommit
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{
		sarama.NewBalanceStrategyRoundRobin(),
	}
	saramaConfig.Consumer.Return.Errors = true

	return saramaConfig, nil
}

// NewConsumer подключается к брокерам из cfg и вступает в cfg.ConsumerGroup.
func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, topics []string, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	saramaConfig, err := NewConsumerConfig(cfg)
	if err != nil {
		return nil, err
	}

	brokers := cfg.BrokerList()
	kafkaLog := log.With(
		logger.NewField("group", cfg.ConsumerGroup),
		logger.NewField("topics", topics),
	)

	if err := waitBrokers(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, err
	}

	group, err := sarama.NewConsumerGroup(brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create consumer group: %w", err)
	}

	return &Consumer{
		log:     kafkaLog,
		group:   group,
		topics:  topics,
		handler: handler,
	}, nil
}

// Start блокируется до отмены ctx. Consume возвращается при каждом ребалансе,
// поэтому вызываем его в цикле.
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.log.Warn("consumer group error", logger.NewField("error", err))
		}
	}()

	for {
		if err := c.group.Consume(ctx, c.topics, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return err
			}
			return fmt.Errorf("consume %v: %w", c.topics, err)
		}

		if err := ctx.Err(); err != nil {
			c.log.Info("consumer context done")
			return err
		}

		c.log.Info("consumer group rebalanced")
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}
