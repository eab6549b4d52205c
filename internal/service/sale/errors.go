package sale

import (
	"fulfillment/internal/pkg/errs"
)

var (
	ErrMissingRequiredFields = errs.Validation("client, warehouse and at least one item are required")
	ErrInvalidItem           = errs.Validation("item requires product, positive quantity with at most 3 decimal places and non-negative price")
	ErrUnknownStatus         = errs.Validation("unknown logistics status")
	ErrNotDeliveryEvent      = errs.Validation("event is not a delivery transition")
	ErrInvalidActor          = errs.Validation("actor is required")
)
