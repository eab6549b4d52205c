package delivery

import (
	"fulfillment/internal/pkg/errs"
)

var (
	ErrInvalidSaleID   = errs.Validation("invalid sale id")
	ErrInvalidDriver   = errs.Validation("driver id is required")
	ErrInvalidVehicle  = errs.Validation("vehicle id is required when vehicle is given")
	ErrInvalidLocation = errs.Validation("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrMissingReason   = errs.Validation("reason is required")
	ErrInvalidActor    = errs.Validation("actor is required")
	ErrUnknownCommand  = errs.Validation("unknown delivery command")
)
