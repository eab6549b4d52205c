package reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationDB struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	WarehouseID   int64
	Quantity      decimal.Decimal
	Status        string
	ReleaseReason string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	UpdatedAt     time.Time
}

type ReservationModifyDB struct {
	ID            *int64
	Status        *string
	ReleaseReason *string
	UpdatedAt     *time.Time
}
