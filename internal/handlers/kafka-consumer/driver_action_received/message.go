package driver_action_received

import (
	"time"

	"fulfillment/internal/entities"
)

type locationMessage struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

type proofMessage struct {
	SignatureURL string   `json:"signature_url"`
	PhotoURLs    []string `json:"photo_urls"`
}

// actionMessage сообщение мобильного приложения водителя.
type actionMessage struct {
	DeliveryID int64            `json:"delivery_id"`
	DriverID   int64            `json:"driver_id"`
	DriverName string           `json:"driver_name"`
	Action     string           `json:"action"`
	Location   *locationMessage `json:"location"`
	Reason     string           `json:"reason"`
	Evidence   []string         `json:"evidence"`
	Proof      *proofMessage    `json:"proof"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func (m actionMessage) toDomain() entities.DriverAction {
	action := entities.DriverAction{
		DeliveryID: m.DeliveryID,
		DriverID:   m.DriverID,
		DriverName: m.DriverName,
		Kind:       entities.DriverActionKind(m.Action),
		Reason:     m.Reason,
		Evidence:   m.Evidence,
		OccurredAt: m.OccurredAt,
	}
	if m.Location != nil {
		action.Location = &entities.GeoPoint{
			Lat:        m.Location.Lat,
			Lng:        m.Location.Lng,
			RecordedAt: m.Location.RecordedAt,
		}
	}
	if m.Proof != nil {
		action.Proof = &entities.Proof{
			SignatureURL: m.Proof.SignatureURL,
			PhotoURLs:    m.Proof.PhotoURLs,
		}
	}
	return action
}
