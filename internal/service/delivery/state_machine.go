package delivery

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/uow"
)

type Config struct {
	// AllowDirectConfirm разрешает confirm прямо из in_transit
	AllowDirectConfirm bool
}

// StateMachine единственный владелец записей доставки.
type StateMachine struct {
	repository  Repository
	sales       SaleService
	reservation ReservationLedger
	unitOfWork  UnitOfWork
	config      Config
	now         func() time.Time
}

func New(
	repository Repository,
	sales SaleService,
	reservation ReservationLedger,
	unitOfWork UnitOfWork,
	config Config,
) *StateMachine {
	return &StateMachine{
		repository:  repository,
		sales:       sales,
		reservation: reservation,
		unitOfWork:  unitOfWork,
		config:      config,
		now:         time.Now,
	}
}

// Schedule создает доставку для продажи и привязывает ее.
func (s *StateMachine) Schedule(
	ctx context.Context,
	saleID int64,
	scheduledAt time.Time,
	actor entities.Actor,
) (*entities.Delivery, error) {
	if saleID <= 0 {
		return nil, ErrInvalidSaleID
	}
	if !actor.IsValid() {
		return nil, ErrInvalidActor
	}

	var res *entities.Delivery
	err := s.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.SaleKey(saleID)); err != nil {
			return err
		}
		sale, err := s.sales.Get(ctx, saleID)
		if err != nil {
			return err
		}
		if sale.LogisticsStatus.IsTerminal() {
			return errs.IllegalTransition("sale", sale.ID,
				sale.LogisticsStatus.String(), entities.LogisticsScheduled.String(), entities.CommandSchedule.String())
		}
		if sale.DeliveryID != nil {
			existing, err := s.repository.GetByID(ctx, *sale.DeliveryID)
			if err != nil {
				return err
			}
			if !existing.Status.IsTerminal() {
				return errs.Conflict("sale", sale.ID,
					sale.LogisticsStatus.String(), entities.LogisticsScheduled.String(), entities.CommandSchedule.String(),
					fmt.Sprintf("delivery %d is still %s", existing.ID, existing.Status))
			}
		}

		now := s.now()
		if scheduledAt.IsZero() {
			scheduledAt = now
		}
		created := entities.Delivery{
			SaleID:      sale.ID,
			ClientID:    sale.ClientID,
			Status:      entities.DeliveryScheduled,
			ScheduledAt: scheduledAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		id, err := s.repository.Create(ctx, created)
		if err != nil {
			return fmt.Errorf("create delivery: %w", err)
		}
		created.ID = id

		event := newEvent(created, "", "", actor, now)
		scope.Record(event)

		if err := s.sales.LinkDelivery(ctx, sale.ID, created.ID); err != nil {
			return err
		}
		if _, err := s.sales.OnDeliveryTransition(ctx, event); err != nil {
			return err
		}

		res = &created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("schedule delivery for sale %d: %w", saleID, err)
	}
	return res, nil
}

func (s *StateMachine) Prepare(ctx context.Context, id int64, actor entities.Actor) (*entities.Delivery, error) {
	return s.apply(ctx, id, entities.CommandPrepare, "", actor, nil)
}

func (s *StateMachine) Assign(
	ctx context.Context,
	id int64,
	driver entities.Driver,
	vehicle *entities.Vehicle,
	actor entities.Actor,
) (*entities.Delivery, error) {
	if driver.ID <= 0 {
		return nil, ErrInvalidDriver
	}
	if vehicle != nil && vehicle.ID <= 0 {
		return nil, ErrInvalidVehicle
	}

	return s.apply(ctx, id, entities.CommandAssign, "", actor, func(d *entities.Delivery, _ time.Time) error {
		assigned := driver
		d.Driver = &assigned
		d.Vehicle = nil
		if vehicle != nil {
			v := *vehicle
			d.Vehicle = &v
		}
		return nil
	})
}

func (s *StateMachine) Start(ctx context.Context, id int64, actor entities.Actor) (*entities.Delivery, error) {
	return s.apply(ctx, id, entities.CommandStart, "", actor, func(d *entities.Delivery, now time.Time) error {
		if d.Driver == nil {
			return errs.InvalidState(entityName, d.ID, d.Status.String(), entities.DeliveryInTransit.String(),
				entities.CommandStart.String())
		}
		d.StartedAt = &now
		return nil
	})
}

func (s *StateMachine) MarkArrived(
	ctx context.Context,
	id int64,
	geo entities.GeoPoint,
	actor entities.Actor,
) (*entities.Delivery, error) {
	if !isValidLocation(geo) {
		return nil, ErrInvalidLocation
	}

	return s.apply(ctx, id, entities.CommandMarkArrived, "", actor, func(d *entities.Delivery, now time.Time) error {
		d.ArrivedAt = &now
		d.LastLocation = stampLocation(geo, now)
		return nil
	})
}

// Confirm фиксирует вручение и потребляет активные резервы заказа.
func (s *StateMachine) Confirm(
	ctx context.Context,
	id int64,
	proof entities.Proof,
	actor entities.Actor,
) (*entities.Delivery, error) {
	return s.apply(ctx, id, entities.CommandConfirm, "", actor, func(d *entities.Delivery, now time.Time) error {
		p := proof
		if proof.PhotoURLs != nil {
			p.PhotoURLs = append([]string(nil), proof.PhotoURLs...)
		}
		d.Proof = &p
		return complete(d, now)
	})
}

func (s *StateMachine) ReportIncident(
	ctx context.Context,
	id int64,
	reason string,
	evidence []string,
	actor entities.Actor,
) (*entities.Delivery, error) {
	if isBlank(reason) {
		return nil, ErrMissingReason
	}

	return s.apply(ctx, id, entities.CommandReportIncident, reason, actor, func(d *entities.Delivery, _ time.Time) error {
		d.StatusBeforeIncident = d.Status
		d.IncidentReason = reason
		d.IncidentEvidence = append([]string(nil), evidence...)
		return nil
	})
}

// ResolveIncident возвращает доставку в статус, из которого был зарегистрирован инцидент.
func (s *StateMachine) ResolveIncident(
	ctx context.Context,
	id int64,
	reason string,
	actor entities.Actor,
) (*entities.Delivery, error) {
	return s.apply(ctx, id, entities.CommandResolveIncident, reason, actor, func(d *entities.Delivery, _ time.Time) error {
		d.StatusBeforeIncident = ""
		return nil
	})
}

// Cancel отменяет доставку и освобождает активные резервы заказа.
func (s *StateMachine) Cancel(ctx context.Context, id int64, reason string, actor entities.Actor) (*entities.Delivery, error) {
	return s.apply(ctx, id, entities.CommandCancel, reason, actor, complete)
}

// Fail закрывает доставку как неудачную и освобождает активные резервы заказа.
func (s *StateMachine) Fail(ctx context.Context, id int64, reason string, actor entities.Actor) (*entities.Delivery, error) {
	return s.apply(ctx, id, entities.CommandFail, reason, actor, complete)
}

// Execute выполняет команду без параметров по ее имени.
func (s *StateMachine) Execute(
	ctx context.Context,
	id int64,
	command entities.DeliveryCommand,
	reason string,
	actor entities.Actor,
) (*entities.Delivery, error) {
	switch command {
	case entities.CommandPrepare:
		return s.Prepare(ctx, id, actor)
	case entities.CommandStart:
		return s.Start(ctx, id, actor)
	case entities.CommandResolveIncident:
		return s.ResolveIncident(ctx, id, reason, actor)
	case entities.CommandCancel:
		return s.Cancel(ctx, id, reason, actor)
	case entities.CommandFail:
		return s.Fail(ctx, id, reason, actor)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

// TrackLocation обновляет последнюю координату. Это не переход статуса, событие не создается.
func (s *StateMachine) TrackLocation(
	ctx context.Context,
	id int64,
	geo entities.GeoPoint,
	actor entities.Actor,
) (*entities.Delivery, error) {
	if !isValidLocation(geo) {
		return nil, ErrInvalidLocation
	}
	if !actor.IsValid() {
		return nil, ErrInvalidActor
	}

	var res *entities.Delivery
	err := s.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.DeliveryKey(id)); err != nil {
			return err
		}
		current, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status.IsTerminal() {
			return errs.IllegalTransition(entityName, current.ID,
				current.Status.String(), current.Status.String(), entities.CommandTrackLocation.String())
		}

		now := s.now()
		next := current.Clone()
		next.LastLocation = stampLocation(geo, now)
		next.UpdatedAt = now
		if err := s.repository.Update(ctx, next); err != nil {
			return fmt.Errorf("update delivery: %w", err)
		}
		res = &next
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("track delivery %d: %w", id, err)
	}
	return res, nil
}

func (s *StateMachine) Get(ctx context.Context, id int64) (*entities.Delivery, error) {
	d, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}
	return d, nil
}

// apply общий путь перехода: блокировки доставки и продажи, проверка по таблице,
// запись, событие, резервы и синхронизация продажи в одной единице работы.
func (s *StateMachine) apply(
	ctx context.Context,
	id int64,
	command entities.DeliveryCommand,
	reason string,
	actor entities.Actor,
	mutate func(d *entities.Delivery, now time.Time) error,
) (*entities.Delivery, error) {
	if !actor.IsValid() {
		return nil, ErrInvalidActor
	}

	var res *entities.Delivery
	err := s.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.DeliveryKey(id)); err != nil {
			return err
		}
		current, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := scope.Lock(ctx, uow.SaleKey(current.SaleID)); err != nil {
			return err
		}

		target, err := NextStatus(*current, command, s.config.AllowDirectConfirm)
		if err != nil {
			return err
		}

		now := s.now()
		next := current.Clone()
		if mutate != nil {
			if err := mutate(&next, now); err != nil {
				return err
			}
		}
		next.Status = target
		next.UpdatedAt = now

		if err := s.repository.Update(ctx, next); err != nil {
			return fmt.Errorf("update delivery: %w", err)
		}

		event := newEvent(next, current.Status.String(), reason, actor, now)
		scope.Record(event)

		switch target {
		case entities.DeliveryDelivered:
			if _, err := s.reservation.ConsumeForOrder(ctx, next.SaleID, actor); err != nil {
				return err
			}
		case entities.DeliveryCancelled, entities.DeliveryFailed:
			if _, err := s.reservation.ReleaseForOrder(ctx, next.SaleID, releaseReason(target, reason), actor); err != nil {
				return err
			}
		}

		if _, err := s.sales.OnDeliveryTransition(ctx, event); err != nil {
			return err
		}

		res = &next
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s delivery %d: %w", command, id, err)
	}
	return res, nil
}

// complete закрывает доставку. Из терминального статуса инцидент уже не разрешить.
func complete(d *entities.Delivery, now time.Time) error {
	d.CompletedAt = &now
	d.StatusBeforeIncident = ""
	return nil
}

func stampLocation(geo entities.GeoPoint, now time.Time) *entities.GeoPoint {
	if geo.RecordedAt.IsZero() {
		geo.RecordedAt = now
	}
	return &geo
}

func releaseReason(target entities.DeliveryStatus, reason string) string {
	if isBlank(reason) {
		return "delivery " + target.String()
	}
	return "delivery " + target.String() + ": " + reason
}

func newEvent(d entities.Delivery, previous, reason string, actor entities.Actor, at time.Time) entities.TransitionEvent {
	snapshot := entities.Snapshot{
		SaleID:     d.SaleID,
		ClientID:   d.ClientID,
		DeliveryID: d.ID,
	}
	if d.Status == entities.DeliveryIncident {
		snapshot.IncidentReason = d.IncidentReason
	}
	if d.Driver != nil {
		snapshot.DriverID = d.Driver.ID
		snapshot.DriverName = d.Driver.Name
	}
	if d.Vehicle != nil {
		snapshot.VehiclePlate = d.Vehicle.Plate
	}
	if d.LastLocation != nil {
		loc := *d.LastLocation
		snapshot.Location = &loc
	}
	if d.Proof != nil {
		snapshot.ProofSignatureURL = d.Proof.SignatureURL
		snapshot.ProofPhotoURLs = append([]string(nil), d.Proof.PhotoURLs...)
	}

	return entities.NewTransitionEvent(
		entities.EntityDelivery,
		d.ID,
		previous,
		d.Status.String(),
		reason,
		actor,
		at,
		snapshot,
	)
}
