package reservation_consume_post

import (
	"net/http"

	"fulfillment/internal/handlers/rest/common"
	"fulfillment/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "id")
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	actor, err := common.Actor(r)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	reservation, err := h.service.Consume(r.Context(), id, actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Reservation consumed",
		logger.NewField("reservation_id", reservation.ID),
	)

	common.WriteJSON(w, h.log, http.StatusOK, common.ReservationToDTO(reservation))
}
