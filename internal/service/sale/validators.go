package sale

import (
	"fulfillment/internal/entities"
)

func isValidItem(item entities.SaleItem) bool {
	return item.ProductID > 0 &&
		item.Quantity.IsPositive() &&
		item.Quantity.Equal(item.Quantity.Truncate(entities.QuantityScale)) &&
		!item.UnitPrice.IsNegative()
}
