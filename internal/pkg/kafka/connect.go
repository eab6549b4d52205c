package kafka

import (
	"context"
	"fmt"
	"time"

	"fulfillment/pkg/logger"
	"fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"

	"github.com/IBM/sarama"
)

// брокеры в docker-compose поднимаются дольше сервиса, поэтому ждем до двух минут
var connectRetry = retrier.Config{
	InitialInterval: time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  2 * time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

func parseVersion(s string) (sarama.KafkaVersion, error) {
	version, err := sarama.ParseKafkaVersion(s)
	if err != nil {
		return sarama.KafkaVersion{}, fmt.Errorf("parse kafka version %q: %w", s, err)
	}
	return version, nil
}

// waitBrokers ретраит получение метаданных, пока кластер не ответит или не истечет connectRetry.
func waitBrokers(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config) error {
	var attempt int

	retryConfig := connectRetry
	retryConfig.Notify = func(err error, next time.Duration) {
		log.Warn("kafka is not reachable yet",
			logger.NewField("attempt", attempt),
			logger.NewField("retry_in", next.String()),
			logger.NewField("error", err),
		)
	}

	err := backoff_adapter.New(retryConfig).ExecuteWithContext(ctx, func(context.Context) error {
		attempt++

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close probe client", logger.NewField("error", err))
			}
		}()

		_, err = client.Topics()
		return err
	})
	if err != nil {
		return fmt.Errorf("kafka unreachable after %d attempts: %w", attempt, err)
	}

	log.Info("kafka connection established", logger.NewField("attempts", attempt))
	return nil
}
