package reservation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/uow"

	"github.com/shopspring/decimal"
)

const (
	reasonExpired = "expired"
	entityName    = "reservation"
)

type Config struct {
	DefaultTTL time.Duration
	// SweepBatch сколько истекших резервов снимать за один проход, 0 - без ограничения
	SweepBatch int
}

// Ledger учет резервов поверх физического остатка.
type Ledger struct {
	repository Repository
	stock      StockRepository
	unitOfWork UnitOfWork
	config     Config
	now        func() time.Time
}

func New(repository Repository, stock StockRepository, unitOfWork UnitOfWork, config Config) *Ledger {
	return &Ledger{
		repository: repository,
		stock:      stock,
		unitOfWork: unitOfWork,
		config:     config,
		now:        time.Now,
	}
}

func (l *Ledger) DefaultTTL() time.Duration {
	return l.config.DefaultTTL
}

func (l *Ledger) Reserve(ctx context.Context, req entities.ReserveRequest, actor entities.Actor) (*entities.Reservation, error) {
	var res *entities.Reservation
	err := l.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.StockKey(req.ProductID, req.WarehouseID)); err != nil {
			return err
		}
		var err error
		res, err = l.reserveLocked(ctx, scope, req, actor)
		return err
	})
	observe("reserve", err)
	if err != nil {
		return nil, fmt.Errorf("reserve: %w", err)
	}
	return res, nil
}

// ReserveLines резервирует набор позиций одного заказа. Блокировки берутся
// в порядке (товар, склад), чтобы параллельные заказы не ждали друг друга по кругу.
func (l *Ledger) ReserveLines(ctx context.Context, reqs []entities.ReserveRequest, actor entities.Actor) ([]entities.Reservation, error) {
	sorted := make([]entities.ReserveRequest, len(reqs))
	copy(sorted, reqs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ProductID != sorted[j].ProductID {
			return sorted[i].ProductID < sorted[j].ProductID
		}
		return sorted[i].WarehouseID < sorted[j].WarehouseID
	})

	var res []entities.Reservation
	err := l.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		res = res[:0]
		for _, req := range sorted {
			if err := scope.Lock(ctx, uow.StockKey(req.ProductID, req.WarehouseID)); err != nil {
				return err
			}
		}
		for _, req := range sorted {
			reservation, err := l.reserveLocked(ctx, scope, req, actor)
			if err != nil {
				return err
			}
			res = append(res, *reservation)
		}
		return nil
	})
	observe("reserve_lines", err)
	if err != nil {
		return nil, fmt.Errorf("reserve lines: %w", err)
	}
	return res, nil
}

func (l *Ledger) reserveLocked(
	ctx context.Context,
	scope *uow.Scope,
	req entities.ReserveRequest,
	actor entities.Actor,
) (*entities.Reservation, error) {
	if req.OrderID <= 0 || req.ProductID <= 0 || req.WarehouseID <= 0 {
		return nil, ErrInvalidReference
	}
	if !isValidQuantity(req.Quantity) {
		return nil, ErrInvalidQuantity
	}
	if !actor.IsValid() {
		return nil, ErrInvalidActor
	}
	ttl := l.config.DefaultTTL
	if req.TTL != nil {
		ttl = *req.TTL
	}
	if ttl < 0 {
		return nil, ErrInvalidTTL
	}

	availability, err := l.availability(ctx, req.ProductID, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if req.Quantity.GreaterThan(availability.Available) {
		return nil, errs.InsufficientStock(req.ProductID, req.WarehouseID, req.Quantity, availability.Available)
	}

	now := l.now()
	reservation := entities.Reservation{
		OrderID:     req.OrderID,
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
		Status:      entities.ReservationActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
		UpdatedAt:   now,
	}
	id, err := l.repository.Create(ctx, reservation)
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	reservation.ID = id

	scope.Record(newEvent(reservation, "", actor, now))
	return &reservation, nil
}

// Consume переводит резерв в consumed и списывает количество с остатка.
// Повторный вызов для уже потребленного резерва успешен и ничего не меняет.
func (l *Ledger) Consume(ctx context.Context, id int64, actor entities.Actor) (*entities.Reservation, error) {
	var res *entities.Reservation
	err := l.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.ReservationKey(id)); err != nil {
			return err
		}
		reservation, err := l.repository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if reservation.Status == entities.ReservationActive {
			if err := scope.Lock(ctx, uow.StockKey(reservation.ProductID, reservation.WarehouseID)); err != nil {
				return err
			}
		}
		res, err = l.consumeLocked(ctx, scope, reservation, actor)
		return err
	})
	observe("consume", err)
	if err != nil {
		return nil, fmt.Errorf("consume reservation %d: %w", id, err)
	}
	return res, nil
}

func (l *Ledger) consumeLocked(
	ctx context.Context,
	scope *uow.Scope,
	reservation *entities.Reservation,
	actor entities.Actor,
) (*entities.Reservation, error) {
	switch reservation.Status {
	case entities.ReservationConsumed:
		return reservation, nil
	case entities.ReservationReleased:
		return nil, errs.InvalidState(entityName, reservation.ID,
			reservation.Status.String(), entities.ReservationConsumed.String(), "consume")
	}
	if !actor.IsValid() {
		return nil, ErrInvalidActor
	}

	now := l.now()
	level, err := l.stockLevel(ctx, reservation.ProductID, reservation.WarehouseID)
	if err != nil {
		return nil, err
	}
	level.OnHand = level.OnHand.Sub(reservation.Quantity)
	level.UpdatedAt = now
	if err := l.stock.Upsert(ctx, *level); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}

	status := entities.ReservationConsumed
	updated, err := l.repository.Update(ctx, entities.ReservationModify{
		ID:        &reservation.ID,
		Status:    &status,
		UpdatedAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	scope.Record(newEvent(*updated, reservation.Status.String(), actor, now))
	return updated, nil
}

// Release освобождает резерв. Физический остаток не меняется, уменьшается только наложение резервов.
func (l *Ledger) Release(ctx context.Context, id int64, reason string, actor entities.Actor) (*entities.Reservation, error) {
	var res *entities.Reservation
	err := l.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.ReservationKey(id)); err != nil {
			return err
		}
		reservation, err := l.repository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		res, err = l.releaseLocked(ctx, scope, reservation, reason, actor)
		return err
	})
	observe("release", err)
	if err != nil {
		return nil, fmt.Errorf("release reservation %d: %w", id, err)
	}
	return res, nil
}

func (l *Ledger) releaseLocked(
	ctx context.Context,
	scope *uow.Scope,
	reservation *entities.Reservation,
	reason string,
	actor entities.Actor,
) (*entities.Reservation, error) {
	switch reservation.Status {
	case entities.ReservationReleased:
		return reservation, nil
	case entities.ReservationConsumed:
		return nil, errs.InvalidState(entityName, reservation.ID,
			reservation.Status.String(), entities.ReservationReleased.String(), "release")
	}
	if !actor.IsValid() {
		return nil, ErrInvalidActor
	}

	now := l.now()
	status := entities.ReservationReleased
	updated, err := l.repository.Update(ctx, entities.ReservationModify{
		ID:            &reservation.ID,
		Status:        &status,
		ReleaseReason: &reason,
		UpdatedAt:     &now,
	})
	if err != nil {
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	event := newEvent(*updated, reservation.Status.String(), actor, now)
	event.Reason = reason
	scope.Record(event)
	return updated, nil
}

// ConsumeForOrder потребляет все активные резервы заказа в текущей единице работы.
func (l *Ledger) ConsumeForOrder(ctx context.Context, orderID int64, actor entities.Actor) ([]entities.Reservation, error) {
	var res []entities.Reservation
	err := l.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		active, err := l.lockActiveByOrder(ctx, scope, orderID, true)
		if err != nil {
			return err
		}
		res = res[:0]
		for i := range active {
			updated, err := l.consumeLocked(ctx, scope, &active[i], actor)
			if err != nil {
				return err
			}
			res = append(res, *updated)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("consume reservations of order %d: %w", orderID, err)
	}
	return res, nil
}

// ReleaseForOrder освобождает все активные резервы заказа в текущей единице работы.
func (l *Ledger) ReleaseForOrder(ctx context.Context, orderID int64, reason string, actor entities.Actor) ([]entities.Reservation, error) {
	var res []entities.Reservation
	err := l.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		active, err := l.lockActiveByOrder(ctx, scope, orderID, false)
		if err != nil {
			return err
		}
		res = res[:0]
		for i := range active {
			updated, err := l.releaseLocked(ctx, scope, &active[i], reason, actor)
			if err != nil {
				return err
			}
			res = append(res, *updated)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("release reservations of order %d: %w", orderID, err)
	}
	return res, nil
}

// lockActiveByOrder блокирует резервы заказа по возрастанию id, затем их остатки по (товар, склад).
// Список перечитывается после блокировки, так как конкурент мог успеть сменить статус.
func (l *Ledger) lockActiveByOrder(
	ctx context.Context,
	scope *uow.Scope,
	orderID int64,
	withStock bool,
) ([]entities.Reservation, error) {
	list, err := l.repository.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	active := filterActive(list)
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	for _, r := range active {
		if err := scope.Lock(ctx, uow.ReservationKey(r.ID)); err != nil {
			return nil, err
		}
	}

	fresh := make([]entities.Reservation, 0, len(active))
	for _, r := range active {
		current, err := l.repository.GetByID(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if current.Status == entities.ReservationActive {
			fresh = append(fresh, *current)
		}
	}

	if withStock {
		keys := stockKeys(fresh)
		for _, key := range keys {
			if err := scope.Lock(ctx, key); err != nil {
				return nil, err
			}
		}
	}
	return fresh, nil
}

// SweepExpired снимает истекшие резервы. Каждый резерв снимается в своей единице работы,
// поэтому отмена контекста между ними не оставляет частичных изменений.
func (l *Ledger) SweepExpired(ctx context.Context, now time.Time) ([]entities.Reservation, error) {
	ids, err := l.repository.ListExpiredIDs(ctx, now, l.config.SweepBatch)
	if err != nil {
		return nil, fmt.Errorf("list expired reservations: %w", err)
	}

	var (
		released []entities.Reservation
		errList  []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errList = append(errList, err)
			break
		}

		var res *entities.Reservation
		err := l.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
			res = nil
			if err := scope.Lock(ctx, uow.ReservationKey(id)); err != nil {
				return err
			}
			reservation, err := l.repository.GetByID(ctx, id)
			if err != nil {
				return err
			}
			// пока ждали блокировку, резерв могли потребить или освободить
			if reservation.Status != entities.ReservationActive || !reservation.IsExpired(now) {
				return nil
			}
			res, err = l.releaseLocked(ctx, scope, reservation, reasonExpired, entities.SystemActor())
			return err
		})
		if err != nil {
			errList = append(errList, fmt.Errorf("expire reservation %d: %w", id, err))
			continue
		}
		if res != nil {
			released = append(released, *res)
			ReservationsExpiredTotal.Inc()
		}
	}

	return released, errors.Join(errList...)
}

// SetOnHand задает физический остаток. Нельзя опустить его ниже суммы активных резервов.
func (l *Ledger) SetOnHand(
	ctx context.Context,
	productID, warehouseID int64,
	onHand decimal.Decimal,
) (*entities.StockLevel, error) {
	if productID <= 0 || warehouseID <= 0 {
		return nil, ErrInvalidReference
	}
	if !isValidOnHand(onHand) {
		return nil, ErrInvalidStock
	}

	var res *entities.StockLevel
	err := l.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.StockKey(productID, warehouseID)); err != nil {
			return err
		}
		// чтение блокирует строку остатка до конца транзакции
		if _, err := l.stockLevel(ctx, productID, warehouseID); err != nil {
			return err
		}
		reserved, err := l.repository.SumActive(ctx, productID, warehouseID)
		if err != nil {
			return fmt.Errorf("sum active reservations: %w", err)
		}
		if onHand.LessThan(reserved) {
			return errs.InsufficientStock(productID, warehouseID, reserved, onHand)
		}

		level := entities.StockLevel{
			ProductID:   productID,
			WarehouseID: warehouseID,
			OnHand:      onHand,
			UpdatedAt:   l.now(),
		}
		if err := l.stock.Upsert(ctx, level); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
		res = &level
		return nil
	})
	observe("set_on_hand", err)
	if err != nil {
		return nil, fmt.Errorf("set on hand: %w", err)
	}
	return res, nil
}

func (l *Ledger) Availability(ctx context.Context, productID, warehouseID int64) (*entities.Availability, error) {
	res, err := l.availability(ctx, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	return res, nil
}

func (l *Ledger) Get(ctx context.Context, id int64) (*entities.Reservation, error) {
	res, err := l.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return res, nil
}

func (l *Ledger) ListByOrder(ctx context.Context, orderID int64) ([]entities.Reservation, error) {
	res, err := l.repository.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return res, nil
}

func (l *Ledger) availability(ctx context.Context, productID, warehouseID int64) (*entities.Availability, error) {
	level, err := l.stockLevel(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	reserved, err := l.repository.SumActive(ctx, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("sum active reservations: %w", err)
	}
	return &entities.Availability{
		ProductID:   productID,
		WarehouseID: warehouseID,
		OnHand:      level.OnHand,
		Reserved:    reserved,
		Available:   level.OnHand.Sub(reserved),
	}, nil
}

// stockLevel отсутствующая строка остатка означает нулевой остаток.
func (l *Ledger) stockLevel(ctx context.Context, productID, warehouseID int64) (*entities.StockLevel, error) {
	level, err := l.stock.Get(ctx, productID, warehouseID)
	if errors.Is(err, errs.ErrNotFound) {
		return &entities.StockLevel{
			ProductID:   productID,
			WarehouseID: warehouseID,
			OnHand:      decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return level, nil
}

func newEvent(r entities.Reservation, previous string, actor entities.Actor, at time.Time) entities.TransitionEvent {
	quantity := r.Quantity
	return entities.NewTransitionEvent(
		entities.EntityReservation,
		r.ID,
		previous,
		r.Status.String(),
		r.ReleaseReason,
		actor,
		at,
		entities.Snapshot{
			SaleID:      r.OrderID,
			ProductID:   r.ProductID,
			WarehouseID: r.WarehouseID,
			Quantity:    &quantity,
		},
	)
}

func filterActive(list []entities.Reservation) []entities.Reservation {
	res := make([]entities.Reservation, 0, len(list))
	for _, r := range list {
		if r.Status == entities.ReservationActive {
			res = append(res, r)
		}
	}
	return res
}

func stockKeys(list []entities.Reservation) []string {
	type pair struct{ product, warehouse int64 }
	seen := make(map[pair]struct{}, len(list))
	pairs := make([]pair, 0, len(list))
	for _, r := range list {
		p := pair{r.ProductID, r.WarehouseID}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].product != pairs[j].product {
			return pairs[i].product < pairs[j].product
		}
		return pairs[i].warehouse < pairs[j].warehouse
	})
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, uow.StockKey(p.product, p.warehouse))
	}
	return keys
}
