// Package dto описывает тела запросов и ответов REST API.
package dto

type PingResponse struct {
	Message *string `json:"message,omitempty"`
	Service string  `json:"service"`
	Storage string  `json:"storage"`
}

// Error тело ответа с ошибкой. Поля деталей заполняются, когда они известны.
type Error struct {
	Error     string `json:"error"`
	Entity    string `json:"entity,omitempty"`
	EntityID  int64  `json:"entity_id,omitempty"`
	Current   string `json:"current_status,omitempty"`
	Attempted string `json:"attempted_status,omitempty"`
	Command   string `json:"command,omitempty"`

	ProductID   int64  `json:"product_id,omitempty"`
	WarehouseID int64  `json:"warehouse_id,omitempty"`
	Requested   string `json:"requested,omitempty"`
	Available   string `json:"available,omitempty"`
}

// ReasonRequest тело команд, которым нужна только причина.
type ReasonRequest struct {
	Reason string `json:"reason"`
}
