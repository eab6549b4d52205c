//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driveraction_test
package driveraction

import (
	"context"

	"fulfillment/internal/entities"
)

type DeliveryService interface {
	Get(ctx context.Context, id int64) (*entities.Delivery, error)
}

type ExecuteFn func(ctx context.Context, action entities.DriverAction) (*entities.Delivery, error)

type HandlerFactory interface {
	GetHandler(kind entities.DriverActionKind) (ExecuteFn, error)
}
