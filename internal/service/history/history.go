package history

import (
	"context"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
)

// Service история переходов сущности. Каждая сущность создается с событием,
// поэтому пустая история означает, что сущности нет.
type Service struct {
	events EventRepository
}

func New(events EventRepository) *Service {
	return &Service{events: events}
}

func (s *Service) History(ctx context.Context, entityType entities.EntityType, entityID int64) ([]entities.TransitionEvent, error) {
	if !entityType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entityType)
	}

	events, err := s.events.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list %s %d history: %w", entityType, entityID, err)
	}
	if len(events) == 0 {
		return nil, errs.NotFound(string(entityType), entityID)
	}
	return events, nil
}
