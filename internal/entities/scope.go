package entities

import (
	"time"

	"github.com/google/uuid"
)

type ScopeKind string

const (
	ScopeOrder    ScopeKind = "order"
	ScopeAdmin    ScopeKind = "admin"
	ScopeDriver   ScopeKind = "driver"
	ScopeCustomer ScopeKind = "customer"
	// ScopeStream общий поток событий для внешних подписчиков (аудит, аналитика)
	ScopeStream ScopeKind = "stream"
)

// ChannelScope аудитория анонса.
type ChannelScope struct {
	Kind ScopeKind
	Key  string
}

// Name имя канала: order.<id>, admin.global, driver.<id>, customer.<id>, stream.events.
func (s ChannelScope) Name() string {
	return string(s.Kind) + "." + s.Key
}

// Announcement плоская полезная нагрузка анонса, строится один раз на событие.
type Announcement struct {
	EventID        uuid.UUID `json:"event_id"`
	EventType      string    `json:"event_type"`
	EntityType     string    `json:"entity_type"`
	EntityID       int64     `json:"entity_id"`
	PreviousStatus string    `json:"previous_status"`
	PreviousLabel  string    `json:"previous_label"`
	NewStatus      string    `json:"new_status"`
	NewLabel       string    `json:"new_label"`
	Terminal       bool      `json:"terminal"`
	Color          string    `json:"color"`
	Icon           string    `json:"icon"`
	Reason         string    `json:"reason,omitempty"`
	ActorType      string    `json:"actor_type"`
	ActorID        string    `json:"actor_id"`
	ActorName      string    `json:"actor_name,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`

	Snapshot
}
