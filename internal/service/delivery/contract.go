//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/uow"
)

type Repository interface {
	Create(ctx context.Context, delivery entities.Delivery) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Delivery, error)
	Update(ctx context.Context, delivery entities.Delivery) error
}

type SaleService interface {
	Get(ctx context.Context, id int64) (*entities.Sale, error)
	LinkDelivery(ctx context.Context, saleID, deliveryID int64) error
	OnDeliveryTransition(ctx context.Context, event entities.TransitionEvent) (*entities.Sale, error)
}

type ReservationLedger interface {
	ConsumeForOrder(ctx context.Context, orderID int64, actor entities.Actor) ([]entities.Reservation, error)
	ReleaseForOrder(ctx context.Context, orderID int64, reason string, actor entities.Actor) ([]entities.Reservation, error)
}

type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, scope *uow.Scope) error) error
}
