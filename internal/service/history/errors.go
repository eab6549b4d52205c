package history

import "fulfillment/internal/pkg/errs"

var ErrUnknownEntity = errs.Validation("unknown entity type")
