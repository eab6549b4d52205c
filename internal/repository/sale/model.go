package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleDB struct {
	ID              int64
	ClientID        int64
	WarehouseID     int64
	LogisticsStatus string
	DeliveryID      *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type SaleItemDB struct {
	SaleID    int64
	Line      int
	ProductID int64
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

type SaleModifyDB struct {
	ID              *int64
	LogisticsStatus *string
	DeliveryID      *int64
	UpdatedAt       *time.Time
}
