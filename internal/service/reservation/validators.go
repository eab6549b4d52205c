package reservation

import (
	"fulfillment/internal/entities"

	"github.com/shopspring/decimal"
)

func isValidScale(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(entities.QuantityScale))
}

func isValidQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && isValidScale(q)
}

func isValidOnHand(q decimal.Decimal) bool {
	return !q.IsNegative() && isValidScale(q)
}
