package delivery

import (
	"fulfillment/internal/entities"

	"github.com/AlekSi/pointer"
)

func ToDomain(d *DeliveryDB) *entities.Delivery {
	if d == nil {
		return nil
	}
	res := &entities.Delivery{
		ID:                   d.ID,
		SaleID:               d.SaleID,
		ClientID:             d.ClientID,
		Status:               entities.DeliveryStatus(d.Status),
		StatusBeforeIncident: entities.DeliveryStatus(d.StatusBeforeIncident),
		ScheduledAt:          d.ScheduledAt,
		StartedAt:            d.StartedAt,
		ArrivedAt:            d.ArrivedAt,
		CompletedAt:          d.CompletedAt,
		IncidentReason:       d.IncidentReason,
		IncidentEvidence:     d.IncidentEvidence,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
	if d.DriverID != nil {
		res.Driver = &entities.Driver{
			ID:   *d.DriverID,
			Name: pointer.Get(d.DriverName),
		}
	}
	if d.VehicleID != nil {
		res.Vehicle = &entities.Vehicle{
			ID:    *d.VehicleID,
			Plate: pointer.Get(d.VehiclePlate),
		}
	}
	if d.LastLat != nil && d.LastLng != nil {
		res.LastLocation = &entities.GeoPoint{
			Lat:        *d.LastLat,
			Lng:        *d.LastLng,
			RecordedAt: pointer.Get(d.LastLocationAt),
		}
	}
	if d.ProofSignatureURL != nil || d.ProofPhotoURLs != nil {
		res.Proof = &entities.Proof{
			SignatureURL: pointer.Get(d.ProofSignatureURL),
			PhotoURLs:    d.ProofPhotoURLs,
		}
	}
	return res
}

func FromDomain(d *entities.Delivery) *DeliveryDB {
	if d == nil {
		return nil
	}
	res := &DeliveryDB{
		ID:                   d.ID,
		SaleID:               d.SaleID,
		ClientID:             d.ClientID,
		Status:               d.Status.String(),
		StatusBeforeIncident: d.StatusBeforeIncident.String(),
		ScheduledAt:          d.ScheduledAt,
		StartedAt:            d.StartedAt,
		ArrivedAt:            d.ArrivedAt,
		CompletedAt:          d.CompletedAt,
		IncidentReason:       d.IncidentReason,
		IncidentEvidence:     d.IncidentEvidence,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
	if d.Driver != nil {
		res.DriverID = pointer.To(d.Driver.ID)
		res.DriverName = pointer.To(d.Driver.Name)
	}
	if d.Vehicle != nil {
		res.VehicleID = pointer.To(d.Vehicle.ID)
		res.VehiclePlate = pointer.To(d.Vehicle.Plate)
	}
	if d.LastLocation != nil {
		res.LastLat = pointer.To(d.LastLocation.Lat)
		res.LastLng = pointer.To(d.LastLocation.Lng)
		res.LastLocationAt = pointer.To(d.LastLocation.RecordedAt)
	}
	if d.Proof != nil {
		res.ProofSignatureURL = pointer.To(d.Proof.SignatureURL)
		res.ProofPhotoURLs = d.Proof.PhotoURLs
	}
	return res
}
