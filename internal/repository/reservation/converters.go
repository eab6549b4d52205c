package reservation

import "fulfillment/internal/entities"

func ToDomain(r *ReservationDB) *entities.Reservation {
	if r == nil {
		return nil
	}
	return &entities.Reservation{
		ID:            r.ID,
		OrderID:       r.OrderID,
		ProductID:     r.ProductID,
		WarehouseID:   r.WarehouseID,
		Quantity:      r.Quantity,
		Status:        entities.ReservationStatus(r.Status),
		ReleaseReason: r.ReleaseReason,
		CreatedAt:     r.CreatedAt,
		ExpiresAt:     r.ExpiresAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func ToDomainList(reservations []ReservationDB) []entities.Reservation {
	res := make([]entities.Reservation, 0, len(reservations))
	for i := range reservations {
		res = append(res, *ToDomain(&reservations[i]))
	}
	return res
}

func FromDomainModify(r *entities.ReservationModify) *ReservationModifyDB {
	if r == nil {
		return nil
	}
	res := &ReservationModifyDB{
		ID:            r.ID,
		ReleaseReason: r.ReleaseReason,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Status != nil {
		status := r.Status.String()
		res.Status = &status
	}
	return res
}
