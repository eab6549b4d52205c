package event

import (
	"time"

	"github.com/google/uuid"
)

type EventDB struct {
	ID             uuid.UUID
	EntityType     string
	EntityID       int64
	PreviousStatus string
	NewStatus      string
	Reason         string
	ActorType      string
	ActorID        string
	ActorName      string
	OccurredAt     time.Time
	Snapshot       []byte
	DispatchedAt   *time.Time
}
