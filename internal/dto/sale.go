package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type SaleCreate struct {
	ClientID    int64      `json:"client_id"`
	WarehouseID int64      `json:"warehouse_id"`
	Items       []SaleItem `json:"items"`
	// ReservationTTL длительность в формате time.ParseDuration, например "30m"
	ReservationTTL *string `json:"reservation_ttl,omitempty"`
}

type Sale struct {
	ID              int64           `json:"id"`
	ClientID        int64           `json:"client_id"`
	WarehouseID     int64           `json:"warehouse_id"`
	Items           []SaleItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	LogisticsStatus string          `json:"logistics_status"`
	DeliveryID      *int64          `json:"delivery_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type SaleCreateResponse struct {
	Sale         Sale          `json:"sale"`
	Reservations []Reservation `json:"reservations"`
}

type LogisticsStatusOverride struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}
