package delivery

import (
	"slices"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
)

const entityName = "delivery"

// из каких статусов допустима команда; cancel и fail допустимы из любого нетерминального
var legalFrom = map[entities.DeliveryCommand][]entities.DeliveryStatus{
	entities.CommandPrepare:         {entities.DeliveryScheduled},
	entities.CommandAssign:          {entities.DeliveryScheduled, entities.DeliveryPreparing},
	entities.CommandStart:           {entities.DeliveryAssigned},
	entities.CommandMarkArrived:     {entities.DeliveryInTransit},
	entities.CommandConfirm:         {entities.DeliveryArrived, entities.DeliveryIncident},
	entities.CommandReportIncident:  {entities.DeliveryAssigned, entities.DeliveryInTransit, entities.DeliveryArrived},
	entities.CommandResolveIncident: {entities.DeliveryIncident},
}

var targets = map[entities.DeliveryCommand]entities.DeliveryStatus{
	entities.CommandPrepare:        entities.DeliveryPreparing,
	entities.CommandAssign:         entities.DeliveryAssigned,
	entities.CommandStart:          entities.DeliveryInTransit,
	entities.CommandMarkArrived:    entities.DeliveryArrived,
	entities.CommandConfirm:        entities.DeliveryDelivered,
	entities.CommandReportIncident: entities.DeliveryIncident,
	entities.CommandCancel:         entities.DeliveryCancelled,
	entities.CommandFail:           entities.DeliveryFailed,
}

// NextStatus статус после команды или типизированная ошибка, если переход недопустим.
func NextStatus(d entities.Delivery, command entities.DeliveryCommand, allowDirectConfirm bool) (entities.DeliveryStatus, error) {
	attempted := targets[command]
	if command == entities.CommandResolveIncident {
		attempted = d.StatusBeforeIncident
	}

	if d.Status.IsTerminal() {
		if command == entities.CommandConfirm {
			return "", errs.InvalidState(entityName, d.ID, d.Status.String(), attempted.String(), command.String())
		}
		return "", errs.IllegalTransition(entityName, d.ID, d.Status.String(), attempted.String(), command.String())
	}

	switch command {
	case entities.CommandCancel, entities.CommandFail:
		return attempted, nil
	case entities.CommandResolveIncident:
		if d.Status != entities.DeliveryIncident || attempted == "" {
			return "", errs.IllegalTransition(entityName, d.ID, d.Status.String(), attempted.String(), command.String())
		}
		return attempted, nil
	}

	from, ok := legalFrom[command]
	if !ok {
		return "", ErrUnknownCommand
	}
	if slices.Contains(from, d.Status) {
		return attempted, nil
	}
	if command == entities.CommandConfirm && allowDirectConfirm && d.Status == entities.DeliveryInTransit {
		return attempted, nil
	}
	return "", errs.IllegalTransition(entityName, d.ID, d.Status.String(), attempted.String(), command.String())
}
