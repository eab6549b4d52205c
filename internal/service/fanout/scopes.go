package fanout

import (
	"strconv"

	"fulfillment/internal/entities"
)

const streamKey = "events"

// StreamScope внешний поток всех событий.
var StreamScope = entities.ChannelScope{Kind: entities.ScopeStream, Key: streamKey}

var adminScope = entities.ChannelScope{Kind: entities.ScopeAdmin, Key: "global"}

// ResolveScopes аудитории события. Каналы без известного ключа пропускаются.
func ResolveScopes(event entities.TransitionEvent) []entities.ChannelScope {
	var (
		res     []entities.ChannelScope
		orderID int64
	)
	switch event.EntityType {
	case entities.EntitySale:
		orderID = event.EntityID
	case entities.EntityDelivery, entities.EntityReservation:
		orderID = event.Snapshot.SaleID
	default:
		return nil
	}

	if orderID > 0 {
		res = append(res, scope(entities.ScopeOrder, orderID))
	}
	res = append(res, adminScope)

	if event.EntityType == entities.EntityDelivery && event.Snapshot.DriverID > 0 {
		res = append(res, scope(entities.ScopeDriver, event.Snapshot.DriverID))
	}
	if event.EntityType != entities.EntityReservation && event.Snapshot.ClientID > 0 {
		res = append(res, scope(entities.ScopeCustomer, event.Snapshot.ClientID))
	}
	return res
}

// Targets каналы анонсов плюс внешний поток событий.
func Targets(event entities.TransitionEvent) []entities.ChannelScope {
	return append(ResolveScopes(event), StreamScope)
}

func scope(kind entities.ScopeKind, id int64) entities.ChannelScope {
	return entities.ChannelScope{Kind: kind, Key: strconv.FormatInt(id, 10)}
}
