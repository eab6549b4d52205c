//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=sale_logistics_status_post_test
package sale_logistics_status_post

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
	OverrideLogisticsStatus(ctx context.Context, saleID int64, code string, reason string, actor entities.Actor) (*entities.Sale, error)
}
