//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=history_test
package history

import (
	"context"

	"fulfillment/internal/entities"
)

type EventRepository interface {
	ListByEntity(ctx context.Context, entityType entities.EntityType, entityID int64) ([]entities.TransitionEvent, error)
}
