package memory

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
)

type SaleRepository struct {
	store *Store
}

func NewSaleRepository(store *Store) *SaleRepository {
	return &SaleRepository{store: store}
}

func (r *SaleRepository) Create(ctx context.Context, sale entities.Sale) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saleSeq++
	sale.ID = s.saleSeq
	s.sales[sale.ID] = sale.Clone()
	s.remember(ctx, func() { delete(s.sales, sale.ID) })

	return sale.ID, nil
}

func (r *SaleRepository) GetByID(_ context.Context, id int64) (*entities.Sale, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := s.sales[id]
	if !ok {
		return nil, errs.NotFound("sale", id)
	}
	res := sale.Clone()
	return &res, nil
}

func (r *SaleRepository) Update(ctx context.Context, modify entities.SaleModify) (*entities.Sale, error) {
	if modify.ID == nil {
		return nil, errs.Validation("sale id is required")
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.sales[*modify.ID]
	if !ok {
		return nil, errs.NotFound("sale", *modify.ID)
	}

	next := prev.Clone()
	if modify.LogisticsStatus != nil {
		next.LogisticsStatus = *modify.LogisticsStatus
	}
	if modify.DeliveryID != nil {
		id := *modify.DeliveryID
		next.DeliveryID = &id
	}
	if modify.UpdatedAt != nil {
		next.UpdatedAt = *modify.UpdatedAt
	}

	s.sales[next.ID] = next
	s.remember(ctx, func() { s.sales[prev.ID] = prev })

	res := next.Clone()
	return &res, nil
}
