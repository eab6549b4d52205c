package memory

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
)

type DeliveryRepository struct {
	store *Store
}

func NewDeliveryRepository(store *Store) *DeliveryRepository {
	return &DeliveryRepository{store: store}
}

func (r *DeliveryRepository) Create(ctx context.Context, delivery entities.Delivery) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deliverySeq++
	delivery.ID = s.deliverySeq
	s.deliveries[delivery.ID] = delivery.Clone()
	s.remember(ctx, func() { delete(s.deliveries, delivery.ID) })

	return delivery.ID, nil
}

func (r *DeliveryRepository) GetByID(_ context.Context, id int64) (*entities.Delivery, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	delivery, ok := s.deliveries[id]
	if !ok {
		return nil, errs.NotFound("delivery", id)
	}
	res := delivery.Clone()
	return &res, nil
}

func (r *DeliveryRepository) Update(ctx context.Context, delivery entities.Delivery) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.deliveries[delivery.ID]
	if !ok {
		return errs.NotFound("delivery", delivery.ID)
	}

	s.deliveries[delivery.ID] = delivery.Clone()
	s.remember(ctx, func() { s.deliveries[prev.ID] = prev })

	return nil
}
