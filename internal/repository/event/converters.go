package event

import (
	"encoding/json"
	"fmt"

	"fulfillment/internal/entities"
)

func ToDomain(e *EventDB) (*entities.TransitionEvent, error) {
	if e == nil {
		return nil, nil
	}
	var snapshot entities.Snapshot
	if len(e.Snapshot) > 0 {
		if err := json.Unmarshal(e.Snapshot, &snapshot); err != nil {
			return nil, fmt.Errorf("decode snapshot of event %s: %w", e.ID, err)
		}
	}
	return &entities.TransitionEvent{
		ID:             e.ID,
		EntityType:     entities.EntityType(e.EntityType),
		EntityID:       e.EntityID,
		PreviousStatus: e.PreviousStatus,
		NewStatus:      e.NewStatus,
		Reason:         e.Reason,
		Actor: entities.Actor{
			Type: entities.ActorType(e.ActorType),
			ID:   e.ActorID,
			Name: e.ActorName,
		},
		OccurredAt:   e.OccurredAt,
		Snapshot:     snapshot,
		DispatchedAt: e.DispatchedAt,
	}, nil
}

func FromDomain(e *entities.TransitionEvent) (*EventDB, error) {
	snapshot, err := json.Marshal(e.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot of event %s: %w", e.ID, err)
	}
	return &EventDB{
		ID:             e.ID,
		EntityType:     e.EntityType.String(),
		EntityID:       e.EntityID,
		PreviousStatus: e.PreviousStatus,
		NewStatus:      e.NewStatus,
		Reason:         e.Reason,
		ActorType:      e.Actor.Type.String(),
		ActorID:        e.Actor.ID,
		ActorName:      e.Actor.Name,
		OccurredAt:     e.OccurredAt,
		Snapshot:       snapshot,
		DispatchedAt:   e.DispatchedAt,
	}, nil
}
