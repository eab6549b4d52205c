package reservation

import (
	"fulfillment/internal/pkg/errs"
)

var (
	ErrInvalidQuantity  = errs.Validation("quantity must be positive with at most 3 decimal places")
	ErrInvalidStock     = errs.Validation("stock quantity must be non-negative with at most 3 decimal places")
	ErrInvalidTTL       = errs.Validation("ttl must not be negative")
	ErrInvalidReference = errs.Validation("order, product and warehouse ids are required")
	ErrInvalidActor     = errs.Validation("actor is required")
)
