package uow

import (
	"context"
	"fmt"

	"fulfillment/internal/entities"
)

type scopeCtxKey struct{}

// Runner единый конвейер фиксации изменений:
// ключевые блокировки, транзакция с повтором при конфликте сериализации,
// запись событий в той же транзакции, передача событий диспетчеру до снятия блокировок.
type Runner struct {
	txManager  TxManager
	events     EventRepository
	dispatcher Dispatcher
	locker     Locker
	retrier    Retrier
}

func New(
	txManager TxManager,
	events EventRepository,
	dispatcher Dispatcher,
	locker Locker,
	retrier Retrier,
) *Runner {
	return &Runner{
		txManager:  txManager,
		events:     events,
		dispatcher: dispatcher,
		locker:     locker,
		retrier:    retrier,
	}
}

// Scope состояние одной единицы работы.
type Scope struct {
	locker Locker
	held   map[string]struct{}
	order  []string
	events []entities.TransitionEvent
}

// Lock захватывает ключи в переданном порядке, уже захваченные пропускаются.
func (s *Scope) Lock(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, ok := s.held[key]; ok {
			continue
		}
		if err := s.locker.Lock(ctx, key); err != nil {
			return fmt.Errorf("lock %s: %w", key, err)
		}
		s.held[key] = struct{}{}
		s.order = append(s.order, key)
	}
	return nil
}

// Record добавляет события, которые будут записаны вместе с транзакцией.
func (s *Scope) Record(events ...entities.TransitionEvent) {
	s.events = append(s.events, events...)
}

// Events события текущей попытки.
func (s *Scope) Events() []entities.TransitionEvent {
	res := make([]entities.TransitionEvent, len(s.events))
	copy(res, s.events)
	return res
}

func (s *Scope) unlockAll() {
	for i := len(s.order) - 1; i >= 0; i-- {
		s.locker.Unlock(s.order[i])
	}
	s.order = nil
	s.held = map[string]struct{}{}
}

// Do выполняет fn как единицу работы. Вложенный вызов присоединяется к внешней.
func (r *Runner) Do(ctx context.Context, fn func(ctx context.Context, scope *Scope) error) error {
	if scope, ok := ctx.Value(scopeCtxKey{}).(*Scope); ok {
		return fn(ctx, scope)
	}

	scope := &Scope{
		locker: r.locker,
		held:   map[string]struct{}{},
	}
	defer scope.unlockAll()

	ctx = context.WithValue(ctx, scopeCtxKey{}, scope)

	err := r.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		scope.events = scope.events[:0]

		return r.txManager.Do(ctx, func(ctx context.Context) error {
			if err := fn(ctx, scope); err != nil {
				return err
			}
			if len(scope.events) == 0 {
				return nil
			}
			if err := r.events.Append(ctx, scope.events...); err != nil {
				return fmt.Errorf("append events: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	if len(scope.events) > 0 {
		r.dispatcher.Enqueue(scope.Events()...)
	}
	return nil
}

// Ключи блокировок. Порядок захвата: доставка, продажа, резерв, остаток.

func DeliveryKey(id int64) string {
	return "delivery:" + entities.FormatID(id)
}

func SaleKey(id int64) string {
	return "sale:" + entities.FormatID(id)
}

func ReservationKey(id int64) string {
	return "reservation:" + entities.FormatID(id)
}

func StockKey(productID, warehouseID int64) string {
	return "stock:" + entities.FormatID(productID) + ":" + entities.FormatID(warehouseID)
}
