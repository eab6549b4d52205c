package dto

import (
	"time"

	"fulfillment/internal/entities"
)

type Actor struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type TransitionEvent struct {
	ID             string            `json:"id"`
	EntityType     string            `json:"entity_type"`
	EntityID       int64             `json:"entity_id"`
	PreviousStatus string            `json:"previous_status"`
	NewStatus      string            `json:"new_status"`
	Reason         string            `json:"reason,omitempty"`
	Actor          Actor             `json:"actor"`
	OccurredAt     time.Time         `json:"occurred_at"`
	Snapshot       entities.Snapshot `json:"snapshot"`
}
