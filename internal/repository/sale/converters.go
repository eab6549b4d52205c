package sale

import "fulfillment/internal/entities"

func ToDomain(s *SaleDB, items []SaleItemDB) *entities.Sale {
	if s == nil {
		return nil
	}
	res := &entities.Sale{
		ID:              s.ID,
		ClientID:        s.ClientID,
		WarehouseID:     s.WarehouseID,
		LogisticsStatus: entities.LogisticsStatus(s.LogisticsStatus),
		DeliveryID:      s.DeliveryID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Items:           make([]entities.SaleItem, 0, len(items)),
	}
	for _, item := range items {
		res.Items = append(res.Items, entities.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return res
}

func FromDomainModify(s *entities.SaleModify) *SaleModifyDB {
	if s == nil {
		return nil
	}
	res := &SaleModifyDB{
		ID:         s.ID,
		DeliveryID: s.DeliveryID,
		UpdatedAt:  s.UpdatedAt,
	}
	if s.LogisticsStatus != nil {
		status := s.LogisticsStatus.String()
		res.LogisticsStatus = &status
	}
	return res
}
