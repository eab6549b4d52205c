//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=broadcast_test
package broadcast

import (
	"fulfillment/pkg/logger"

	"github.com/IBM/sarama"
)

type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (int32, int64, error)
}

type publisherLogger interface {
	Info(msg string, fields ...logger.Field)
}
