//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reservation_test
package reservation

import (
	"context"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/uow"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, reservation entities.Reservation) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Reservation, error)
	Update(ctx context.Context, modify entities.ReservationModify) (*entities.Reservation, error)
	ListByOrder(ctx context.Context, orderID int64) ([]entities.Reservation, error)
	SumActive(ctx context.Context, productID, warehouseID int64) (decimal.Decimal, error)
	ListExpiredIDs(ctx context.Context, now time.Time, limit int) ([]int64, error)
}

type StockRepository interface {
	// Get в транзакции блокирует строку остатка до ее конца
	Get(ctx context.Context, productID, warehouseID int64) (*entities.StockLevel, error)
	Upsert(ctx context.Context, level entities.StockLevel) error
}

type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, scope *uow.Scope) error) error
}
