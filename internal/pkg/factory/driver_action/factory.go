package driver_action

import (
	"context"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/service/driveraction"
)

type StateMachine interface {
	Start(ctx context.Context, id int64, actor entities.Actor) (*entities.Delivery, error)
	MarkArrived(ctx context.Context, id int64, geo entities.GeoPoint, actor entities.Actor) (*entities.Delivery, error)
	Confirm(ctx context.Context, id int64, proof entities.Proof, actor entities.Actor) (*entities.Delivery, error)
	ReportIncident(ctx context.Context, id int64, reason string, evidence []string, actor entities.Actor) (*entities.Delivery, error)
	TrackLocation(ctx context.Context, id int64, geo entities.GeoPoint, actor entities.Actor) (*entities.Delivery, error)
}

type ActionHandlerFactory struct {
	stateMachine StateMachine
}

func NewActionHandlerFactory(stateMachine StateMachine) *ActionHandlerFactory {
	return &ActionHandlerFactory{
		stateMachine: stateMachine,
	}
}

func (f *ActionHandlerFactory) GetHandler(kind entities.DriverActionKind) (driveraction.ExecuteFn, error) {
	switch kind {
	case entities.DriverActionStart:
		return f.startHandler, nil
	case entities.DriverActionArrive:
		return f.arriveHandler, nil
	case entities.DriverActionConfirm:
		return f.confirmHandler, nil
	case entities.DriverActionIncident:
		return f.incidentHandler, nil
	case entities.DriverActionLocation:
		return f.locationHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", driveraction.ErrUndefinedAction, kind)
	}
}

func (f *ActionHandlerFactory) startHandler(ctx context.Context, action entities.DriverAction) (*entities.Delivery, error) {
	delivery, err := f.stateMachine.Start(ctx, action.DeliveryID, action.Actor())
	if err != nil {
		return nil, fmt.Errorf("start delivery %d: %w", action.DeliveryID, err)
	}
	return delivery, nil
}

func (f *ActionHandlerFactory) arriveHandler(ctx context.Context, action entities.DriverAction) (*entities.Delivery, error) {
	geo, err := location(action)
	if err != nil {
		return nil, err
	}
	delivery, err := f.stateMachine.MarkArrived(ctx, action.DeliveryID, geo, action.Actor())
	if err != nil {
		return nil, fmt.Errorf("mark delivery %d arrived: %w", action.DeliveryID, err)
	}
	return delivery, nil
}

func (f *ActionHandlerFactory) confirmHandler(ctx context.Context, action entities.DriverAction) (*entities.Delivery, error) {
	var proof entities.Proof
	if action.Proof != nil {
		proof = *action.Proof
	}
	delivery, err := f.stateMachine.Confirm(ctx, action.DeliveryID, proof, action.Actor())
	if err != nil {
		return nil, fmt.Errorf("confirm delivery %d: %w", action.DeliveryID, err)
	}
	return delivery, nil
}

func (f *ActionHandlerFactory) incidentHandler(ctx context.Context, action entities.DriverAction) (*entities.Delivery, error) {
	delivery, err := f.stateMachine.ReportIncident(ctx, action.DeliveryID, action.Reason, action.Evidence, action.Actor())
	if err != nil {
		return nil, fmt.Errorf("report incident on delivery %d: %w", action.DeliveryID, err)
	}
	return delivery, nil
}

func (f *ActionHandlerFactory) locationHandler(ctx context.Context, action entities.DriverAction) (*entities.Delivery, error) {
	geo, err := location(action)
	if err != nil {
		return nil, err
	}
	delivery, err := f.stateMachine.TrackLocation(ctx, action.DeliveryID, geo, action.Actor())
	if err != nil {
		return nil, fmt.Errorf("track delivery %d: %w", action.DeliveryID, err)
	}
	return delivery, nil
}

func location(action entities.DriverAction) (entities.GeoPoint, error) {
	if action.Location == nil {
		return entities.GeoPoint{}, fmt.Errorf("%w: %s", driveraction.ErrMissingLocation, action.Kind)
	}
	geo := *action.Location
	if geo.RecordedAt.IsZero() {
		geo.RecordedAt = action.OccurredAt
	}
	return geo, nil
}
