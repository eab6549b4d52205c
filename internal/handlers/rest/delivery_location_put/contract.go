//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_location_put_test
package delivery_location_put

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
	TrackLocation(ctx context.Context, id int64, geo entities.GeoPoint, actor entities.Actor) (*entities.Delivery, error)
}
