//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reservation_sweep_test
package reservation_sweep

import (
	"context"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	SweepExpired(ctx context.Context, now time.Time) ([]entities.Reservation, error)
}
