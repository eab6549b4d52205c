//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"fulfillment/internal/pkg/config"
	deliveryService "fulfillment/internal/service/delivery"
	fanoutService "fulfillment/internal/service/fanout"
	historyService "fulfillment/internal/service/history"
	reservationService "fulfillment/internal/service/reservation"
	saleService "fulfillment/internal/service/sale"
	"fulfillment/pkg/logger"

	"github.com/google/wire"
)

var storageSet = wire.NewSet(
	wire.FieldsOf(new(*Storage), "Sales", "Deliveries", "Reservations", "Stock", "Events", "FanoutLedger", "TxManager"),
)

var domainSet = wire.NewSet(
	provideDispatcher,
	provideUnitOfWork,
	provideReservationLedger,
	provideSaleSynchronizer,
	provideStateMachine,
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	storage *Storage,
	publisher fanoutService.Publisher,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		storageSet,
		domainSet,
		provideHistory,

		provideReservationSweepTask,
		provideFanoutRedriveTask,
		provideFanoutRetentionTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceSale), new(*saleService.Synchronizer)),
		wire.Bind(new(ServiceReservation), new(*reservationService.Ledger)),
		wire.Bind(new(ServiceDelivery), new(*deliveryService.StateMachine)),
		wire.Bind(new(ServiceHistory), new(*historyService.Service)),
	)
	return &Application{}, nil
}

// InitializeDriverActionApp для Kafka воркера (cmd/worker-driver-actions)
func InitializeDriverActionApp(
	log logger.Logger,
	storage *Storage,
	publisher fanoutService.Publisher,
	cfg *config.Config,
) (*DriverActionApp, error) {
	wire.Build(
		storageSet,
		domainSet,
		provideDriverActionService,

		wire.Struct(new(DriverActionApp), "*"),
	)
	return nil, nil
}
