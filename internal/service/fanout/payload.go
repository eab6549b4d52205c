package fanout

import (
	"fulfillment/internal/entities"
)

// BuildPayload плоская запись анонса с подписями статусов из справочника.
func BuildPayload(event entities.TransitionEvent) entities.Announcement {
	next, _ := entities.LookupStatus(event.EntityType, event.NewStatus)

	var previousLabel string
	if event.PreviousStatus != "" {
		if previous, ok := entities.LookupStatus(event.EntityType, event.PreviousStatus); ok {
			previousLabel = previous.Label
		}
	}

	return entities.Announcement{
		EventID:        event.ID,
		EventType:      event.Type(),
		EntityType:     string(event.EntityType),
		EntityID:       event.EntityID,
		PreviousStatus: event.PreviousStatus,
		PreviousLabel:  previousLabel,
		NewStatus:      event.NewStatus,
		NewLabel:       next.Label,
		Terminal:       next.Terminal,
		Color:          next.Color,
		Icon:           next.Icon,
		Reason:         event.Reason,
		ActorType:      string(event.Actor.Type),
		ActorID:        event.Actor.ID,
		ActorName:      event.Actor.Name,
		OccurredAt:     event.OccurredAt,
		Snapshot:       event.Snapshot,
	}
}
