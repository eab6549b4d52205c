package sale

import "fulfillment/internal/entities"

// статус продажи как функция статуса доставки
var deliveryToLogistics = map[entities.DeliveryStatus]entities.LogisticsStatus{
	entities.DeliveryScheduled: entities.LogisticsScheduled,
	entities.DeliveryPreparing: entities.LogisticsInPreparation,
	entities.DeliveryAssigned:  entities.LogisticsDispatched,
	entities.DeliveryInTransit: entities.LogisticsDispatched,
	entities.DeliveryArrived:   entities.LogisticsDispatched,
	entities.DeliveryIncident:  entities.LogisticsIncident,
	entities.DeliveryDelivered: entities.LogisticsDelivered,
	entities.DeliveryCancelled: entities.LogisticsCancelled,
	entities.DeliveryFailed:    entities.LogisticsFailed,
}

// MapDeliveryStatus логистический статус продажи для статуса ее доставки.
func MapDeliveryStatus(status entities.DeliveryStatus) (entities.LogisticsStatus, bool) {
	res, ok := deliveryToLogistics[status]
	return res, ok
}

// IsDeliveryManaged статусы, которыми владеет привязанная доставка.
func IsDeliveryManaged(status entities.LogisticsStatus) bool {
	for _, managed := range deliveryToLogistics {
		if managed == status {
			return true
		}
	}
	return false
}
