//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_assign_post_test
package delivery_assign_post

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
	Assign(ctx context.Context, id int64, driver entities.Driver, vehicle *entities.Vehicle, actor entities.Actor) (*entities.Delivery, error)
}
