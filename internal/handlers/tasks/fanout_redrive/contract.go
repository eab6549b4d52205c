//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=fanout_redrive_test
package fanout_redrive

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
	Redrive(ctx context.Context) (int, error)
}
