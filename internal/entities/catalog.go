package entities

import "sort"

// Status запись справочника логистических статусов.
// Color и Icon нужны только потребителям событий.
type Status struct {
	Code     string
	Kind     EntityType
	Label    string
	Terminal bool
	Color    string
	Icon     string
	Order    int
}

var catalog = map[EntityType]map[string]Status{
	EntityDelivery: index(EntityDelivery, []Status{
		{Code: "scheduled", Label: "Programada", Color: "#6c757d", Icon: "calendar"},
		{Code: "preparing", Label: "En preparación", Color: "#17a2b8", Icon: "box"},
		{Code: "assigned", Label: "Asignada", Color: "#007bff", Icon: "user-check"},
		{Code: "in_transit", Label: "En tránsito", Color: "#fd7e14", Icon: "truck"},
		{Code: "arrived", Label: "En destino", Color: "#20c997", Icon: "map-pin"},
		{Code: "delivered", Label: "Entregada", Terminal: true, Color: "#28a745", Icon: "check-circle"},
		{Code: "incident", Label: "Con incidencia", Color: "#ffc107", Icon: "alert-triangle"},
		{Code: "cancelled", Label: "Cancelada", Terminal: true, Color: "#343a40", Icon: "x-circle"},
		{Code: "failed", Label: "Fallida", Terminal: true, Color: "#dc3545", Icon: "alert-octagon"},
	}),
	EntitySale: index(EntitySale, []Status{
		{Code: "pending", Label: "Pendiente", Color: "#6c757d", Icon: "clock"},
		{Code: "on_hold", Label: "En espera", Color: "#6f42c1", Icon: "pause-circle"},
		{Code: "scheduled", Label: "Programado", Color: "#6c757d", Icon: "calendar"},
		{Code: "in_preparation", Label: "En preparación", Color: "#17a2b8", Icon: "box"},
		{Code: "dispatched", Label: "Despachado", Color: "#fd7e14", Icon: "truck"},
		{Code: "incident", Label: "Con incidencia", Color: "#ffc107", Icon: "alert-triangle"},
		{Code: "delivered", Label: "Entregado", Terminal: true, Color: "#28a745", Icon: "check-circle"},
		{Code: "cancelled", Label: "Cancelado", Terminal: true, Color: "#343a40", Icon: "x-circle"},
		{Code: "failed", Label: "Fallido", Terminal: true, Color: "#dc3545", Icon: "alert-octagon"},
	}),
	EntityReservation: index(EntityReservation, []Status{
		{Code: "active", Label: "Activa", Color: "#007bff", Icon: "lock"},
		{Code: "released", Label: "Liberada", Terminal: true, Color: "#6c757d", Icon: "unlock"},
		{Code: "consumed", Label: "Consumida", Terminal: true, Color: "#28a745", Icon: "check"},
	}),
}

func index(kind EntityType, statuses []Status) map[string]Status {
	res := make(map[string]Status, len(statuses))
	for i, s := range statuses {
		s.Kind = kind
		s.Order = i
		res[s.Code] = s
	}
	return res
}

// LookupStatus ищет код в справочнике конкретного типа сущности.
func LookupStatus(kind EntityType, code string) (Status, bool) {
	statuses, ok := catalog[kind]
	if !ok {
		return Status{}, false
	}
	s, ok := statuses[code]
	return s, ok
}

// Statuses возвращает справочник типа сущности в порядке объявления.
func Statuses(kind EntityType) []Status {
	statuses := catalog[kind]
	res := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Order < res[j].Order
	})
	return res
}
