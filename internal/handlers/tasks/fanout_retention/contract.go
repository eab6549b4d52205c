//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=fanout_retention_test
package fanout_retention

import (
	"context"

	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	PurgeDelivered(ctx context.Context) (int64, error)
}
