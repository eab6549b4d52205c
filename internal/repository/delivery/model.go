package delivery

import "time"

type DeliveryDB struct {
	ID                   int64
	SaleID               int64
	ClientID             int64
	Status               string
	StatusBeforeIncident string
	DriverID             *int64
	DriverName           *string
	VehicleID            *int64
	VehiclePlate         *string
	ScheduledAt          time.Time
	StartedAt            *time.Time
	ArrivedAt            *time.Time
	CompletedAt          *time.Time
	LastLat              *float64
	LastLng              *float64
	LastLocationAt       *time.Time
	IncidentReason       string
	IncidentEvidence     []string
	ProofSignatureURL    *string
	ProofPhotoURLs       []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
