//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=sale_post_test
package sale_post

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
	CreateSale(ctx context.Context, create entities.SaleCreate, actor entities.Actor) (*entities.Sale, []entities.Reservation, error)
}
