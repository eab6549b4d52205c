package entities

import "time"

type DriverActionKind string

const (
	DriverActionStart    DriverActionKind = "start"
	DriverActionArrive   DriverActionKind = "arrive"
	DriverActionConfirm  DriverActionKind = "confirm"
	DriverActionIncident DriverActionKind = "incident"
	DriverActionLocation DriverActionKind = "location"
)

func (k DriverActionKind) String() string {
	return string(k)
}

// DriverAction действие водителя из мобильного приложения.
type DriverAction struct {
	DeliveryID int64
	DriverID   int64
	DriverName string
	Kind       DriverActionKind
	Location   *GeoPoint
	Reason     string
	Evidence   []string
	Proof      *Proof
	OccurredAt time.Time
}

func (a DriverAction) Actor() Actor {
	return Actor{
		Type: ActorDriver,
		ID:   FormatID(a.DriverID),
		Name: a.DriverName,
	}
}
