package entities

import "time"

type GeoPoint struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

type Driver struct {
	ID   int64
	Name string
}

type Vehicle struct {
	ID    int64
	Plate string
}

// Proof ссылки на подтверждение вручения. Сами файлы хранятся во внешнем хранилище.
type Proof struct {
	SignatureURL string
	PhotoURLs    []string
}

type Delivery struct {
	ID       int64
	SaleID   int64
	ClientID int64
	Status   DeliveryStatus

	// StatusBeforeIncident статус, в который вернет resolve_incident
	StatusBeforeIncident DeliveryStatus

	Driver  *Driver
	Vehicle *Vehicle

	ScheduledAt time.Time
	StartedAt   *time.Time
	ArrivedAt   *time.Time
	CompletedAt *time.Time

	LastLocation *GeoPoint

	IncidentReason   string
	IncidentEvidence []string

	Proof *Proof

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d Delivery) DriverID() int64 {
	if d.Driver == nil {
		return 0
	}
	return d.Driver.ID
}

func (d Delivery) Clone() Delivery {
	res := d
	if d.Driver != nil {
		driver := *d.Driver
		res.Driver = &driver
	}
	if d.Vehicle != nil {
		vehicle := *d.Vehicle
		res.Vehicle = &vehicle
	}
	res.StartedAt = cloneTime(d.StartedAt)
	res.ArrivedAt = cloneTime(d.ArrivedAt)
	res.CompletedAt = cloneTime(d.CompletedAt)
	if d.LastLocation != nil {
		loc := *d.LastLocation
		res.LastLocation = &loc
	}
	if d.IncidentEvidence != nil {
		res.IncidentEvidence = append([]string(nil), d.IncidentEvidence...)
	}
	if d.Proof != nil {
		proof := Proof{SignatureURL: d.Proof.SignatureURL}
		if d.Proof.PhotoURLs != nil {
			proof.PhotoURLs = append([]string(nil), d.Proof.PhotoURLs...)
		}
		res.Proof = &proof
	}
	return res
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// DeliveryCommand команда автомата доставки.
type DeliveryCommand string

const (
	CommandSchedule        DeliveryCommand = "schedule"
	CommandPrepare         DeliveryCommand = "prepare"
	CommandAssign          DeliveryCommand = "assign"
	CommandStart           DeliveryCommand = "start"
	CommandMarkArrived     DeliveryCommand = "mark_arrived"
	CommandConfirm         DeliveryCommand = "confirm"
	CommandReportIncident  DeliveryCommand = "report_incident"
	CommandResolveIncident DeliveryCommand = "resolve_incident"
	CommandCancel          DeliveryCommand = "cancel"
	CommandFail            DeliveryCommand = "fail"
	CommandTrackLocation   DeliveryCommand = "track_location"
)

func (c DeliveryCommand) String() string {
	return string(c)
}
