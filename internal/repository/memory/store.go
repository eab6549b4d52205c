package memory

import (
	"context"
	"sync"

	"fulfillment/internal/entities"

	"github.com/google/uuid"
)

// Store хранилище в памяти для тестов и STORAGE_DRIVER=memory.
// Изменения видны сразу, откат транзакции восстанавливает прежние значения.
// Сериализацию конкурентных изменений обеспечивают ключевые блокировки единицы работы.
type Store struct {
	mu sync.RWMutex

	saleSeq        int64
	deliverySeq    int64
	reservationSeq int64
	eventSeq       int64

	sales        map[int64]entities.Sale
	deliveries   map[int64]entities.Delivery
	reservations map[int64]entities.Reservation
	stock        map[stockKey]entities.StockLevel
	events       map[uuid.UUID]storedEvent
	eventOrder   []uuid.UUID
	fanout       map[fanoutKey]fanoutRecord
}

type stockKey struct {
	productID   int64
	warehouseID int64
}

type storedEvent struct {
	seq   int64
	event entities.TransitionEvent
}

func NewStore() *Store {
	return &Store{
		sales:        make(map[int64]entities.Sale),
		deliveries:   make(map[int64]entities.Delivery),
		reservations: make(map[int64]entities.Reservation),
		stock:        make(map[stockKey]entities.StockLevel),
		events:       make(map[uuid.UUID]storedEvent),
		fanout:       make(map[fanoutKey]fanoutRecord),
	}
}

type txCtxKey struct{}

type transaction struct {
	undo []func()
}

// TxManager транзакции поверх журнала отмены. Вложенные вызовы присоединяются к внешней транзакции.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txCtxKey{}).(*transaction); ok {
		return fn(ctx)
	}

	tx := &transaction{}
	defer func() {
		if r := recover(); r != nil {
			m.store.rollback(tx)
			panic(r)
		}
		if err != nil {
			m.store.rollback(tx)
		}
	}()

	return fn(context.WithValue(ctx, txCtxKey{}, tx))
}

func (s *Store) rollback(tx *transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

// remember вызывается под s.mu. Вне транзакции изменение применяется сразу и навсегда.
func (s *Store) remember(ctx context.Context, undo func()) {
	tx, ok := ctx.Value(txCtxKey{}).(*transaction)
	if !ok {
		return
	}
	tx.undo = append(tx.undo, undo)
}
