package memory

import (
	"context"
	"sort"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type ReservationRepository struct {
	store *Store
}

func NewReservationRepository(store *Store) *ReservationRepository {
	return &ReservationRepository{store: store}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation entities.Reservation) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reservationSeq++
	reservation.ID = s.reservationSeq
	s.reservations[reservation.ID] = reservation
	s.remember(ctx, func() { delete(s.reservations, reservation.ID) })

	return reservation.ID, nil
}

func (r *ReservationRepository) GetByID(_ context.Context, id int64) (*entities.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return nil, errs.NotFound("reservation", id)
	}
	return &reservation, nil
}

func (r *ReservationRepository) Update(ctx context.Context, modify entities.ReservationModify) (*entities.Reservation, error) {
	if modify.ID == nil {
		return nil, errs.Validation("reservation id is required")
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.reservations[*modify.ID]
	if !ok {
		return nil, errs.NotFound("reservation", *modify.ID)
	}

	next := prev
	if modify.Status != nil {
		next.Status = *modify.Status
	}
	if modify.ReleaseReason != nil {
		next.ReleaseReason = *modify.ReleaseReason
	}
	if modify.UpdatedAt != nil {
		next.UpdatedAt = *modify.UpdatedAt
	}

	s.reservations[next.ID] = next
	s.remember(ctx, func() { s.reservations[prev.ID] = prev })

	return &next, nil
}

func (r *ReservationRepository) ListByOrder(_ context.Context, orderID int64) ([]entities.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]entities.Reservation, 0)
	for _, reservation := range s.reservations {
		if reservation.OrderID == orderID {
			res = append(res, reservation)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *ReservationRepository) SumActive(_ context.Context, productID, warehouseID int64) (decimal.Decimal, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := decimal.Zero
	for _, reservation := range s.reservations {
		if reservation.Status == entities.ReservationActive &&
			reservation.ProductID == productID &&
			reservation.WarehouseID == warehouseID {
			sum = sum.Add(reservation.Quantity)
		}
	}
	return sum, nil
}

func (r *ReservationRepository) ListExpiredIDs(_ context.Context, now time.Time, limit int) ([]int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	expired := make([]entities.Reservation, 0)
	for _, reservation := range s.reservations {
		if reservation.Status == entities.ReservationActive && reservation.IsExpired(now) {
			expired = append(expired, reservation)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		if !expired[i].ExpiresAt.Equal(expired[j].ExpiresAt) {
			return expired[i].ExpiresAt.Before(expired[j].ExpiresAt)
		}
		return expired[i].ID < expired[j].ID
	})
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}

	ids := make([]int64, 0, len(expired))
	for _, reservation := range expired {
		ids = append(ids, reservation.ID)
	}
	return ids, nil
}
