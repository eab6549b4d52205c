//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reservation_release_post_test
package reservation_release_post

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
	Release(ctx context.Context, id int64, reason string, actor entities.Actor) (*entities.Reservation, error)
}
