package memory

import (
	"context"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
)

type StockRepository struct {
	store *Store
}

func NewStockRepository(store *Store) *StockRepository {
	return &StockRepository{store: store}
}

func (r *StockRepository) Get(_ context.Context, productID, warehouseID int64) (*entities.StockLevel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	level, ok := s.stock[stockKey{productID, warehouseID}]
	if !ok {
		return nil, errs.NotFound("stock", fmt.Sprintf("%d:%d", productID, warehouseID))
	}
	return &level, nil
}

func (r *StockRepository) Upsert(ctx context.Context, level entities.StockLevel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stockKey{level.ProductID, level.WarehouseID}
	prev, existed := s.stock[key]
	s.stock[key] = level
	s.remember(ctx, func() {
		if existed {
			s.stock[key] = prev
			return
		}
		delete(s.stock, key)
	})

	return nil
}
