package app

import (
	"fulfillment/internal/handlers/rest/healthcheck_head"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/uow"
	deliveryRepo "fulfillment/internal/repository/delivery"
	eventRepo "fulfillment/internal/repository/event"
	fanoutRepo "fulfillment/internal/repository/fanout"
	"fulfillment/internal/repository/memory"
	reservationRepo "fulfillment/internal/repository/reservation"
	saleRepo "fulfillment/internal/repository/sale"
	stockRepo "fulfillment/internal/repository/stock"
	deliveryService "fulfillment/internal/service/delivery"
	fanoutService "fulfillment/internal/service/fanout"
	historyService "fulfillment/internal/service/history"
	reservationService "fulfillment/internal/service/reservation"
	saleService "fulfillment/internal/service/sale"
	"fulfillment/pkg/querier"
	"fulfillment/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventStore журнал переходов: запись в транзакции, история и redrive.
type EventStore interface {
	uow.EventRepository
	fanoutService.EventRepository
	historyService.EventRepository
}

// Storage репозитории одного драйвера хранилища.
type Storage struct {
	Driver       string
	Sales        saleService.Repository
	Deliveries   deliveryService.Repository
	Reservations reservationService.Repository
	Stock        reservationService.StockRepository
	Events       EventStore
	FanoutLedger fanoutService.DeliveryLedger
	TxManager    uow.TxManager
	// Checker nil, если проверять нечего
	Checker healthcheck_head.Checker
}

func NewPostgresStorage(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Storage {
	q := querier.New(pool, getter)

	return &Storage{
		Driver:       config.StoragePostgres,
		Sales:        saleRepo.New(q),
		Deliveries:   deliveryRepo.New(q),
		Reservations: reservationRepo.New(q),
		Stock:        stockRepo.New(q),
		Events:       eventRepo.New(q),
		FanoutLedger: fanoutRepo.New(q),
		TxManager:    tx.New(pool),
		Checker:      pool,
	}
}

// NewMemoryStorage хранилище в памяти процесса, данные теряются при рестарте.
func NewMemoryStorage() *Storage {
	store := memory.NewStore()

	return &Storage{
		Driver:       config.StorageMemory,
		Sales:        memory.NewSaleRepository(store),
		Deliveries:   memory.NewDeliveryRepository(store),
		Reservations: memory.NewReservationRepository(store),
		Stock:        memory.NewStockRepository(store),
		Events:       memory.NewEventRepository(store),
		FanoutLedger: memory.NewFanoutLedger(store),
		TxManager:    memory.NewTxManager(store),
	}
}
