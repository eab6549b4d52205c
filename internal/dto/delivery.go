package dto

import "time"

type DeliveryCreate struct {
	SaleID      int64      `json:"sale_id"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type DeliveryAssignRequest struct {
	DriverID     int64   `json:"driver_id"`
	DriverName   string  `json:"driver_name"`
	VehicleID    *int64  `json:"vehicle_id,omitempty"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`
}

type DeliveryCommandRequest struct {
	Command string `json:"command"`
	Reason  string `json:"reason"`
}

type Location struct {
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

type DeliveryConfirmRequest struct {
	SignatureURL string   `json:"signature_url"`
	PhotoURLs    []string `json:"photo_urls"`
}

type DeliveryIncidentRequest struct {
	Reason   string   `json:"reason"`
	Evidence []string `json:"evidence"`
}

type Driver struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Vehicle struct {
	ID    int64  `json:"id"`
	Plate string `json:"plate"`
}

type Proof struct {
	SignatureURL string   `json:"signature_url"`
	PhotoURLs    []string `json:"photo_urls,omitempty"`
}

type Delivery struct {
	ID               int64      `json:"id"`
	SaleID           int64      `json:"sale_id"`
	ClientID         int64      `json:"client_id"`
	Status           string     `json:"status"`
	Driver           *Driver    `json:"driver,omitempty"`
	Vehicle          *Vehicle   `json:"vehicle,omitempty"`
	ScheduledAt      time.Time  `json:"scheduled_at"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	ArrivedAt        *time.Time `json:"arrived_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	LastLocation     *Location  `json:"last_location,omitempty"`
	IncidentReason   string     `json:"incident_reason,omitempty"`
	IncidentEvidence []string   `json:"incident_evidence,omitempty"`
	Proof            *Proof     `json:"proof,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
