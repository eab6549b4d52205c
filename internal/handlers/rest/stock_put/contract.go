//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stock_put_test
package stock_put

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"

	"github.com/shopspring/decimal"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	SetOnHand(ctx context.Context, productID, warehouseID int64, onHand decimal.Decimal) (*entities.StockLevel, error)
	Availability(ctx context.Context, productID, warehouseID int64) (*entities.Availability, error)
}
