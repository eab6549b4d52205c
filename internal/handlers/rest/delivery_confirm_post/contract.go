//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_confirm_post_test
package delivery_confirm_post

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
	Confirm(ctx context.Context, id int64, proof entities.Proof, actor entities.Actor) (*entities.Delivery, error)
}
