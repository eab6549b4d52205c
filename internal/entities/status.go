package entities

// EntityType тип агрегата, к которому относится статус или событие.
type EntityType string

const (
	EntitySale        EntityType = "sale"
	EntityDelivery    EntityType = "delivery"
	EntityReservation EntityType = "reservation"
)

func (t EntityType) String() string {
	return string(t)
}

func (t EntityType) IsValid() bool {
	switch t {
	case EntitySale, EntityDelivery, EntityReservation:
		return true
	default:
		return false
	}
}

// DeliveryStatus статус доставки.
type DeliveryStatus string

const (
	DeliveryScheduled DeliveryStatus = "scheduled"
	DeliveryPreparing DeliveryStatus = "preparing"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryArrived   DeliveryStatus = "arrived"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryIncident  DeliveryStatus = "incident"
	DeliveryCancelled DeliveryStatus = "cancelled"
	DeliveryFailed    DeliveryStatus = "failed"
)

func (s DeliveryStatus) String() string {
	return string(s)
}

func (s DeliveryStatus) IsTerminal() bool {
	status, ok := LookupStatus(EntityDelivery, string(s))
	return ok && status.Terminal
}

// LogisticsStatus логистический статус продажи.
type LogisticsStatus string

const (
	LogisticsPending       LogisticsStatus = "pending"
	LogisticsOnHold        LogisticsStatus = "on_hold"
	LogisticsScheduled     LogisticsStatus = "scheduled"
	LogisticsInPreparation LogisticsStatus = "in_preparation"
	LogisticsDispatched    LogisticsStatus = "dispatched"
	LogisticsIncident      LogisticsStatus = "incident"
	LogisticsDelivered     LogisticsStatus = "delivered"
	LogisticsCancelled     LogisticsStatus = "cancelled"
	LogisticsFailed        LogisticsStatus = "failed"
)

func (s LogisticsStatus) String() string {
	return string(s)
}

func (s LogisticsStatus) IsTerminal() bool {
	status, ok := LookupStatus(EntitySale, string(s))
	return ok && status.Terminal
}

// ParseLogisticsStatus возвращает false для кодов вне справочника.
func ParseLogisticsStatus(code string) (LogisticsStatus, bool) {
	if _, ok := LookupStatus(EntitySale, code); !ok {
		return "", false
	}
	return LogisticsStatus(code), true
}

// ReservationStatus статус резерва.
type ReservationStatus string

const (
	ReservationActive   ReservationStatus = "active"
	ReservationReleased ReservationStatus = "released"
	ReservationConsumed ReservationStatus = "consumed"
)

func (s ReservationStatus) String() string {
	return string(s)
}

func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationReleased || s == ReservationConsumed
}
