//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_action_received_test
package driver_action_received

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
	ProcessDriverAction(ctx context.Context, action entities.DriverAction) (*entities.Delivery, error)
}
