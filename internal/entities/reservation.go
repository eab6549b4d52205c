package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Reservation struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	WarehouseID   int64
	Quantity      decimal.Decimal
	Status        ReservationStatus
	ReleaseReason string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	UpdatedAt     time.Time
}

// IsExpired истек ли срок резерва на момент now (граница включительно).
func (r Reservation) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

type ReservationModify struct {
	ID            *int64
	Status        *ReservationStatus
	ReleaseReason *string
	UpdatedAt     *time.Time
}

// ReserveRequest параметры резервирования.
type ReserveRequest struct {
	OrderID     int64
	ProductID   int64
	WarehouseID int64
	Quantity    decimal.Decimal
	// TTL если nil, берется TTL из конфигурации. Ноль означает уже истекший резерв.
	TTL *time.Duration
}

// StockLevel физический остаток товара на складе.
type StockLevel struct {
	ProductID   int64
	WarehouseID int64
	OnHand      decimal.Decimal
	UpdatedAt   time.Time
}

// Availability остаток с учетом активных резервов.
type Availability struct {
	ProductID   int64
	WarehouseID int64
	OnHand      decimal.Decimal
	Reserved    decimal.Decimal
	Available   decimal.Decimal
}
