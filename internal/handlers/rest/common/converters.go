package common

import (
	"fulfillment/internal/dto"
	"fulfillment/internal/entities"

	"github.com/AlekSi/pointer"
)

func SaleToDTO(sale *entities.Sale) dto.Sale {
	items := make([]dto.SaleItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, dto.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return dto.Sale{
		ID:              sale.ID,
		ClientID:        sale.ClientID,
		WarehouseID:     sale.WarehouseID,
		Items:           items,
		Total:           sale.Total(),
		LogisticsStatus: sale.LogisticsStatus.String(),
		DeliveryID:      sale.DeliveryID,
		CreatedAt:       sale.CreatedAt,
		UpdatedAt:       sale.UpdatedAt,
	}
}

func ReservationToDTO(r *entities.Reservation) dto.Reservation {
	return dto.Reservation{
		ID:            r.ID,
		OrderID:       r.OrderID,
		ProductID:     r.ProductID,
		WarehouseID:   r.WarehouseID,
		Quantity:      r.Quantity,
		Status:        r.Status.String(),
		ReleaseReason: r.ReleaseReason,
		CreatedAt:     r.CreatedAt,
		ExpiresAt:     r.ExpiresAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func ReservationsToDTO(reservations []entities.Reservation) []dto.Reservation {
	res := make([]dto.Reservation, 0, len(reservations))
	for i := range reservations {
		res = append(res, ReservationToDTO(&reservations[i]))
	}
	return res
}

func DeliveryToDTO(d *entities.Delivery) dto.Delivery {
	res := dto.Delivery{
		ID:               d.ID,
		SaleID:           d.SaleID,
		ClientID:         d.ClientID,
		Status:           d.Status.String(),
		ScheduledAt:      d.ScheduledAt,
		StartedAt:        d.StartedAt,
		ArrivedAt:        d.ArrivedAt,
		CompletedAt:      d.CompletedAt,
		IncidentReason:   d.IncidentReason,
		IncidentEvidence: d.IncidentEvidence,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.Driver != nil {
		res.Driver = &dto.Driver{ID: d.Driver.ID, Name: d.Driver.Name}
	}
	if d.Vehicle != nil {
		res.Vehicle = &dto.Vehicle{ID: d.Vehicle.ID, Plate: d.Vehicle.Plate}
	}
	if d.LastLocation != nil {
		recordedAt := d.LastLocation.RecordedAt
		res.LastLocation = &dto.Location{
			Lat:        d.LastLocation.Lat,
			Lng:        d.LastLocation.Lng,
			RecordedAt: &recordedAt,
		}
	}
	if d.Proof != nil {
		res.Proof = &dto.Proof{SignatureURL: d.Proof.SignatureURL, PhotoURLs: d.Proof.PhotoURLs}
	}
	return res
}

func EventToDTO(e *entities.TransitionEvent) dto.TransitionEvent {
	return dto.TransitionEvent{
		ID:             e.ID.String(),
		EntityType:     e.EntityType.String(),
		EntityID:       e.EntityID,
		PreviousStatus: e.PreviousStatus,
		NewStatus:      e.NewStatus,
		Reason:         e.Reason,
		Actor: dto.Actor{
			Type: e.Actor.Type.String(),
			ID:   e.Actor.ID,
			Name: e.Actor.Name,
		},
		OccurredAt: e.OccurredAt,
		Snapshot:   e.Snapshot,
	}
}

func LocationToGeo(loc dto.Location) entities.GeoPoint {
	return entities.GeoPoint{
		Lat:        loc.Lat,
		Lng:        loc.Lng,
		RecordedAt: pointer.Get(loc.RecordedAt),
	}
}
