package app

import (
	"context"
	"time"

	"fulfillment/internal/handlers/tasks/fanout_redrive"
	"fulfillment/internal/handlers/tasks/fanout_retention"
	"fulfillment/internal/handlers/tasks/reservation_sweep"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/factory/driver_action"
	"fulfillment/internal/pkg/uow"
	"fulfillment/internal/repository"
	deliveryService "fulfillment/internal/service/delivery"
	"fulfillment/internal/service/driveraction"
	fanoutService "fulfillment/internal/service/fanout"
	historyService "fulfillment/internal/service/history"
	reservationService "fulfillment/internal/service/reservation"
	saleService "fulfillment/internal/service/sale"
	"fulfillment/pkg/background"
	"fulfillment/pkg/keymutex"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"
)

// повтор транзакции при конфликте сериализации
var txRetry = retrier.Config{
	InitialInterval: 10 * time.Millisecond,
	MaxInterval:     200 * time.Millisecond,
	MaxElapsedTime:  2 * time.Second,
	Randomization:   0.5,
	Multiplier:      2,
	ShouldRetry:     repository.IsSerializationFailure,
}

func provideDispatcher(
	log logger.Logger,
	events EventStore,
	ledger fanoutService.DeliveryLedger,
	publisher fanoutService.Publisher,
	cfg *config.Config,
) *fanoutService.Dispatcher {
	return fanoutService.New(
		log.With(logger.NewField("component", "fanout")),
		events,
		ledger,
		publisher,
		keymutex.New(),
		fanoutService.Config{
			Workers:   cfg.Fanout.Workers,
			QueueSize: cfg.Fanout.QueueSize,
			Retry: retrier.Config{
				InitialInterval: cfg.Fanout.RetryInitialInterval,
				MaxInterval:     cfg.Fanout.RetryMaxInterval,
				MaxElapsedTime:  cfg.Fanout.RetryMaxElapsed,
				Randomization:   0.5,
				Multiplier:      2,
			},
			RedriveGrace: cfg.Fanout.RedriveGrace,
			RedriveBatch: cfg.Fanout.RedriveBatch,
			ClaimLease:   cfg.Fanout.RedriveGrace,
			Retention:    cfg.Fanout.RetentionPeriod,
		},
	)
}

func provideUnitOfWork(txManager uow.TxManager, events EventStore, dispatcher *fanoutService.Dispatcher) *uow.Runner {
	return uow.New(txManager, events, dispatcher, keymutex.New(), backoff_adapter.New(txRetry))
}

func provideReservationLedger(
	repository reservationService.Repository,
	stock reservationService.StockRepository,
	unitOfWork *uow.Runner,
	cfg *config.Config,
) *reservationService.Ledger {
	return reservationService.New(repository, stock, unitOfWork, reservationService.Config{
		DefaultTTL: cfg.Reservation.DefaultTTL,
		SweepBatch: cfg.Reservation.SweepBatch,
	})
}

func provideSaleSynchronizer(
	repository saleService.Repository,
	ledger *reservationService.Ledger,
	unitOfWork *uow.Runner,
) *saleService.Synchronizer {
	return saleService.New(repository, ledger, unitOfWork)
}

func provideStateMachine(
	repository deliveryService.Repository,
	sales *saleService.Synchronizer,
	ledger *reservationService.Ledger,
	unitOfWork *uow.Runner,
	cfg *config.Config,
) *deliveryService.StateMachine {
	return deliveryService.New(repository, sales, ledger, unitOfWork, deliveryService.Config{
		AllowDirectConfirm: cfg.Delivery.AllowDirectConfirm,
	})
}

func provideHistory(events EventStore) *historyService.Service {
	return historyService.New(events)
}

func provideDriverActionService(stateMachine *deliveryService.StateMachine) *driveraction.Service {
	return driveraction.New(stateMachine, driver_action.NewActionHandlerFactory(stateMachine))
}

func provideReservationSweepTask(
	log logger.Logger,
	ledger *reservationService.Ledger,
	cfg *config.Config,
) *reservation_sweep.ReservationSweep {
	return reservation_sweep.NewReservationSweep(log, ledger, cfg.Tasks.ReservationSweepInterval)
}

func provideFanoutRedriveTask(
	log logger.Logger,
	dispatcher *fanoutService.Dispatcher,
	cfg *config.Config,
) *fanout_redrive.FanoutRedrive {
	return fanout_redrive.NewFanoutRedrive(log, dispatcher, cfg.Tasks.FanoutRedriveInterval)
}

func provideFanoutRetentionTask(
	log logger.Logger,
	dispatcher *fanoutService.Dispatcher,
	cfg *config.Config,
) *fanout_retention.FanoutRetention {
	return fanout_retention.NewFanoutRetention(log, dispatcher, cfg.Tasks.FanoutRetentionSchedule)
}

func provideTaskList(
	reservationSweepTask *reservation_sweep.ReservationSweep,
	fanoutRedriveTask *fanout_redrive.FanoutRedrive,
	fanoutRetentionTask *fanout_retention.FanoutRetention,
) []background.Task {
	return []background.Task{
		reservationSweepTask,
		fanoutRedriveTask,
		fanoutRetentionTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
