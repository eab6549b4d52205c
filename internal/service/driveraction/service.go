package driveraction

import (
	"context"
	"fmt"

	"fulfillment/internal/entities"
)

// Service превращает действия водителя в команды автомата доставки.
type Service struct {
	deliveryService DeliveryService
	actionFactory   HandlerFactory
}

func New(deliveryService DeliveryService, actionFactory HandlerFactory) *Service {
	return &Service{
		deliveryService: deliveryService,
		actionFactory:   actionFactory,
	}
}

func (s *Service) ProcessDriverAction(ctx context.Context, action entities.DriverAction) (*entities.Delivery, error) {
	if action.DeliveryID <= 0 || action.DriverID <= 0 || action.Kind == "" {
		return nil, ErrMissingRequiredFields
	}

	executeFn, err := s.actionFactory.GetHandler(action.Kind)
	if err != nil {
		return nil, err
	}

	delivery, err := s.deliveryService.Get(ctx, action.DeliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery %d: %w", action.DeliveryID, err)
	}
	// действовать может только назначенный водитель
	if delivery.DriverID() != action.DriverID {
		return nil, fmt.Errorf("%w: delivery %d, driver %d", ErrDriverMismatch, action.DeliveryID, action.DriverID)
	}

	return executeFn(ctx, action)
}
