package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuantityScale количество знаков после запятой для количеств товара.
const QuantityScale = 3

type SaleItem struct {
	ProductID int64
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

type Sale struct {
	ID              int64
	ClientID        int64
	WarehouseID     int64
	Items           []SaleItem
	LogisticsStatus LogisticsStatus
	DeliveryID      *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}
	return total
}

func (s Sale) HasDelivery() bool {
	return s.DeliveryID != nil
}

func (s Sale) Clone() Sale {
	res := s
	if s.Items != nil {
		res.Items = make([]SaleItem, len(s.Items))
		copy(res.Items, s.Items)
	}
	if s.DeliveryID != nil {
		id := *s.DeliveryID
		res.DeliveryID = &id
	}
	return res
}

type SaleModify struct {
	ID              *int64
	LogisticsStatus *LogisticsStatus
	DeliveryID      *int64
	UpdatedAt       *time.Time
}

// SaleCreate данные оформления продажи.
type SaleCreate struct {
	ClientID    int64
	WarehouseID int64
	Items       []SaleItem
	// ReservationTTL если nil, берется TTL из конфигурации
	ReservationTTL *time.Duration
}
