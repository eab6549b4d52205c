package delivery_get

import (
	"net/http"

	"fulfillment/internal/handlers/rest/common"
)

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
	id, err := common.PathID(r, "id")
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	delivery, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	common.WriteJSON(w, h.log, http.StatusOK, common.DeliveryToDTO(delivery))
}
