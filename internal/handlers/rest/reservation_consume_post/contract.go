//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reservation_consume_post_test
package reservation_consume_post

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
	Consume(ctx context.Context, id int64, actor entities.Actor) (*entities.Reservation, error)
}
