//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reservation_get_test
package reservation_get

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Get(ctx context.Context, id int64) (*entities.Reservation, error)
}
