package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot денормализованные поля для потребителей события без повторного чтения.
type Snapshot struct {
	SaleID            int64            `json:"sale_id,omitempty"`
	ClientID          int64            `json:"client_id,omitempty"`
	DeliveryID        int64            `json:"delivery_id,omitempty"`
	DriverID          int64            `json:"driver_id,omitempty"`
	DriverName        string           `json:"driver_name,omitempty"`
	VehiclePlate      string           `json:"vehicle_plate,omitempty"`
	ProductID         int64            `json:"product_id,omitempty"`
	WarehouseID       int64            `json:"warehouse_id,omitempty"`
	Quantity          *decimal.Decimal `json:"quantity,omitempty"`
	IncidentReason    string           `json:"incident_reason,omitempty"`
	Location          *GeoPoint        `json:"location,omitempty"`
	ProofSignatureURL string           `json:"proof_signature_url,omitempty"`
	ProofPhotoURLs    []string         `json:"proof_photo_urls,omitempty"`
}

// TransitionEvent неизменяемая запись об одном зафиксированном переходе статуса.
type TransitionEvent struct {
	ID             uuid.UUID
	EntityType     EntityType
	EntityID       int64
	PreviousStatus string
	NewStatus      string
	Reason         string
	Actor          Actor
	OccurredAt     time.Time
	Snapshot       Snapshot
	DispatchedAt   *time.Time
}

func NewTransitionEvent(
	entityType EntityType,
	entityID int64,
	previous, next string,
	reason string,
	actor Actor,
	occurredAt time.Time,
	snapshot Snapshot,
) TransitionEvent {
	return TransitionEvent{
		ID:             uuid.New(),
		EntityType:     entityType,
		EntityID:       entityID,
		PreviousStatus: previous,
		NewStatus:      next,
		Reason:         reason,
		Actor:          actor,
		OccurredAt:     occurredAt,
		Snapshot:       snapshot,
	}
}

// Type тип события для потребителей, например "delivery.status_changed".
func (e TransitionEvent) Type() string {
	return fmt.Sprintf("%s.status_changed", e.EntityType)
}

// ShardKey ключ упорядочивания событий одной сущности.
func (e TransitionEvent) ShardKey() string {
	return fmt.Sprintf("%s:%d", e.EntityType, e.EntityID)
}

// ClaimResult итог попытки захватить канал для рассылки события.
type ClaimResult int

const (
	ClaimAcquired ClaimResult = iota
	// ClaimDelivered канал уже получил событие
	ClaimDelivered
	// ClaimBusy канал рассылает другой процесс
	ClaimBusy
)
