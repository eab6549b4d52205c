//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stock_get_test
package stock_get

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
	Availability(ctx context.Context, productID, warehouseID int64) (*entities.Availability, error)
}
