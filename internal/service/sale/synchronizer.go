package sale

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/uow"
)

const (
	reasonSynchronized = "synchronized from delivery"
	entityName         = "sale"
)

// Synchronizer держит логистический статус продажи согласованным со статусом ее доставки.
type Synchronizer struct {
	repository  Repository
	reservation ReservationLedger
	unitOfWork  UnitOfWork
	now         func() time.Time
}

func New(repository Repository, reservation ReservationLedger, unitOfWork UnitOfWork) *Synchronizer {
	return &Synchronizer{
		repository:  repository,
		reservation: reservation,
		unitOfWork:  unitOfWork,
		now:         time.Now,
	}
}

// CreateSale оформляет продажу в статусе pending и резервирует все позиции. Либо все, либо ничего.
func (s *Synchronizer) CreateSale(
	ctx context.Context,
	create entities.SaleCreate,
	actor entities.Actor,
) (*entities.Sale, []entities.Reservation, error) {
	if create.ClientID <= 0 || create.WarehouseID <= 0 || len(create.Items) == 0 {
		return nil, nil, ErrMissingRequiredFields
	}
	for _, item := range create.Items {
		if !isValidItem(item) {
			return nil, nil, ErrInvalidItem
		}
	}
	if !actor.IsValid() {
		return nil, nil, ErrInvalidActor
	}

	var (
		sale         *entities.Sale
		reservations []entities.Reservation
	)
	err := s.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		now := s.now()
		created := entities.Sale{
			ClientID:        create.ClientID,
			WarehouseID:     create.WarehouseID,
			Items:           create.Items,
			LogisticsStatus: entities.LogisticsPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		id, err := s.repository.Create(ctx, created)
		if err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		created.ID = id
		created = created.Clone()

		scope.Record(newEvent(created, "", "", actor, now, entities.Snapshot{}))

		reqs := make([]entities.ReserveRequest, 0, len(created.Items))
		for _, item := range created.Items {
			reqs = append(reqs, entities.ReserveRequest{
				OrderID:     created.ID,
				ProductID:   item.ProductID,
				WarehouseID: created.WarehouseID,
				Quantity:    item.Quantity,
				TTL:         create.ReservationTTL,
			})
		}
		reservations, err = s.reservation.ReserveLines(ctx, reqs, actor)
		if err != nil {
			return err
		}

		sale = &created
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create sale: %w", err)
	}
	return sale, reservations, nil
}

func (s *Synchronizer) Get(ctx context.Context, id int64) (*entities.Sale, error) {
	sale, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return sale, nil
}

// LinkDelivery привязывает доставку к продаже.
func (s *Synchronizer) LinkDelivery(ctx context.Context, saleID, deliveryID int64) error {
	return s.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.SaleKey(saleID)); err != nil {
			return err
		}
		now := s.now()
		_, err := s.repository.Update(ctx, entities.SaleModify{
			ID:         &saleID,
			DeliveryID: &deliveryID,
			UpdatedAt:  &now,
		})
		if err != nil {
			return fmt.Errorf("link delivery %d to sale %d: %w", deliveryID, saleID, err)
		}
		return nil
	})
}

// OnDeliveryTransition переносит новый статус доставки на продажу по таблице соответствия.
// Если статус продажи уже совпадает, ничего не меняется и событие не создается.
func (s *Synchronizer) OnDeliveryTransition(ctx context.Context, event entities.TransitionEvent) (*entities.Sale, error) {
	if event.EntityType != entities.EntityDelivery || event.Snapshot.SaleID == 0 {
		return nil, ErrNotDeliveryEvent
	}
	target, ok := MapDeliveryStatus(entities.DeliveryStatus(event.NewStatus))
	if !ok {
		return nil, fmt.Errorf("%w: delivery status %q", ErrUnknownStatus, event.NewStatus)
	}
	saleID := event.Snapshot.SaleID

	var res *entities.Sale
	err := s.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.SaleKey(saleID)); err != nil {
			return err
		}
		sale, err := s.repository.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale.LogisticsStatus == target {
			res = sale
			return nil
		}
		if sale.LogisticsStatus.IsTerminal() {
			return errs.IllegalTransition(entityName, sale.ID,
				sale.LogisticsStatus.String(), target.String(), "synchronize")
		}

		snapshot := event.Snapshot
		snapshot.DeliveryID = event.EntityID
		res, err = s.apply(ctx, scope, sale, target, reasonSynchronized, event.Actor, snapshot)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("synchronize sale %d: %w", saleID, err)
	}
	return res, nil
}

// OverrideLogisticsStatus ручная смена статуса оператором. Пока к продаже привязана доставка,
// статусы из таблицы соответствия принадлежат ей.
func (s *Synchronizer) OverrideLogisticsStatus(
	ctx context.Context,
	saleID int64,
	code string,
	reason string,
	actor entities.Actor,
) (*entities.Sale, error) {
	target, ok := entities.ParseLogisticsStatus(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, code)
	}
	if !actor.IsValid() {
		return nil, ErrInvalidActor
	}

	var res *entities.Sale
	err := s.unitOfWork.Do(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if err := scope.Lock(ctx, uow.SaleKey(saleID)); err != nil {
			return err
		}
		sale, err := s.repository.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale.LogisticsStatus.IsTerminal() {
			return errs.IllegalTransition(entityName, sale.ID,
				sale.LogisticsStatus.String(), target.String(), "override")
		}
		if sale.HasDelivery() && IsDeliveryManaged(target) {
			return errs.Conflict(entityName, sale.ID,
				sale.LogisticsStatus.String(), target.String(), "override",
				fmt.Sprintf("status is managed by delivery %d", *sale.DeliveryID))
		}
		if sale.LogisticsStatus == target {
			res = sale
			return nil
		}

		snapshot := entities.Snapshot{}
		if sale.DeliveryID != nil {
			snapshot.DeliveryID = *sale.DeliveryID
		}
		res, err = s.apply(ctx, scope, sale, target, reason, actor, snapshot)
		if err != nil {
			return err
		}
		return s.settleReservations(ctx, sale.ID, target, reason, actor)
	})
	if err != nil {
		return nil, fmt.Errorf("override sale %d status: %w", saleID, err)
	}
	return res, nil
}

// settleReservations закрывает резервы продажи, переведенной оператором в терминальный статус.
// Без доставки больше некому их потребить или освободить.
func (s *Synchronizer) settleReservations(
	ctx context.Context,
	saleID int64,
	target entities.LogisticsStatus,
	reason string,
	actor entities.Actor,
) error {
	switch target {
	case entities.LogisticsDelivered:
		if _, err := s.reservation.ConsumeForOrder(ctx, saleID, actor); err != nil {
			return err
		}
	case entities.LogisticsCancelled, entities.LogisticsFailed:
		if _, err := s.reservation.ReleaseForOrder(ctx, saleID, releaseReason(target, reason), actor); err != nil {
			return err
		}
	}
	return nil
}

func releaseReason(target entities.LogisticsStatus, reason string) string {
	if strings.TrimSpace(reason) == "" {
		return "sale " + target.String()
	}
	return "sale " + target.String() + ": " + reason
}

func (s *Synchronizer) apply(
	ctx context.Context,
	scope *uow.Scope,
	sale *entities.Sale,
	target entities.LogisticsStatus,
	reason string,
	actor entities.Actor,
	snapshot entities.Snapshot,
) (*entities.Sale, error) {
	now := s.now()
	updated, err := s.repository.Update(ctx, entities.SaleModify{
		ID:              &sale.ID,
		LogisticsStatus: &target,
		UpdatedAt:       &now,
	})
	if err != nil {
		return nil, fmt.Errorf("update sale: %w", err)
	}

	scope.Record(newEvent(*updated, sale.LogisticsStatus.String(), reason, actor, now, snapshot))
	return updated, nil
}

func newEvent(
	sale entities.Sale,
	previous, reason string,
	actor entities.Actor,
	at time.Time,
	snapshot entities.Snapshot,
) entities.TransitionEvent {
	snapshot.SaleID = sale.ID
	snapshot.ClientID = sale.ClientID
	snapshot.WarehouseID = sale.WarehouseID
	return entities.NewTransitionEvent(
		entities.EntitySale,
		sale.ID,
		previous,
		sale.LogisticsStatus.String(),
		reason,
		actor,
		at,
		snapshot,
	)
}
