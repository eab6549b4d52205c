package history_get

import (
	"errors"
	"net/http"

	"fulfillment/internal/dto"
	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/common"

	"github.com/gorilla/mux"
)

// PathPattern шаблон маршрута истории для всех типов сущностей.
const PathPattern = "/{entity:sales|deliveries|reservations}/{id}/history"

var entityByPath = map[string]entities.EntityType{
	"sales":        entities.EntitySale,
	"deliveries":   entities.EntityDelivery,
	"reservations": entities.EntityReservation,
}

var ErrUnknownEntity = errors.New("history is available for sales, deliveries and reservations")

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entityType, ok := entityByPath[mux.Vars(r)["entity"]]
	if !ok {
		common.WriteJSON(w, h.log, http.StatusNotFound, dto.Error{Error: ErrUnknownEntity.Error()})
		return
	}

	id, err := common.PathID(r, "id")
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	events, err := h.service.History(r.Context(), entityType, id)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	res := make([]dto.TransitionEvent, 0, len(events))
	for i := range events {
		res = append(res, common.EventToDTO(&events[i]))
	}

	common.WriteJSON(w, h.log, http.StatusOK, res)
}
