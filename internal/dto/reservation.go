package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationCreate struct {
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	WarehouseID int64           `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	TTL         *string         `json:"ttl,omitempty"`
}

type Reservation struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	ProductID     int64           `json:"product_id"`
	WarehouseID   int64           `json:"warehouse_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Status        string          `json:"status"`
	ReleaseReason string          `json:"release_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type StockPut struct {
	OnHand decimal.Decimal `json:"on_hand"`
}

type Stock struct {
	ProductID   int64           `json:"product_id"`
	WarehouseID int64           `json:"warehouse_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
	Reserved    decimal.Decimal `json:"reserved"`
	Available   decimal.Decimal `json:"available"`
}
