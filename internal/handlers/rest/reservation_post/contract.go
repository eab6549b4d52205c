//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reservation_post_test
package reservation_post

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
	Reserve(ctx context.Context, req entities.ReserveRequest, actor entities.Actor) (*entities.Reservation, error)
}
