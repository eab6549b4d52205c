//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=sale_test
package sale

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/uow"
)

type Repository interface {
	Create(ctx context.Context, sale entities.Sale) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Sale, error)
	Update(ctx context.Context, modify entities.SaleModify) (*entities.Sale, error)
}

type ReservationLedger interface {
	ReserveLines(ctx context.Context, reqs []entities.ReserveRequest, actor entities.Actor) ([]entities.Reservation, error)
	ConsumeForOrder(ctx context.Context, orderID int64, actor entities.Actor) ([]entities.Reservation, error)
	ReleaseForOrder(ctx context.Context, orderID int64, reason string, actor entities.Actor) ([]entities.Reservation, error)
}

type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, scope *uow.Scope) error) error
}
