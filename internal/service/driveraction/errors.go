package driveraction

import (
	"errors"

	"fulfillment/internal/pkg/errs"
)

var (
	ErrMissingRequiredFields = errs.Validation("delivery id, driver id and action are required")
	ErrUndefinedAction       = errs.Validation("undefined driver action")
	ErrMissingLocation       = errs.Validation("location is required")
	ErrDriverMismatch        = errors.New("delivery is assigned to another driver")
)
