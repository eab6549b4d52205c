//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_command_post_test
package delivery_command_post

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
	Execute(ctx context.Context, id int64, command entities.DeliveryCommand, reason string, actor entities.Actor) (*entities.Delivery, error)
}
