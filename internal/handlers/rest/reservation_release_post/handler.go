package reservation_release_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"fulfillment/internal/dto"
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

	// тело необязательно, причина по умолчанию задается сервисом
	var reasonDTO dto.ReasonRequest
	err = json.NewDecoder(r.Body).Decode(&reasonDTO)
	if err != nil && !errors.Is(err, io.EOF) {
		common.BadRequest(w, h.log, err)
		return
	}

	reservation, err := h.service.Release(r.Context(), id, reasonDTO.Reason, actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Reservation released",
		logger.NewField("reservation_id", reservation.ID),
		logger.NewField("reason", reservation.ReleaseReason),
	)

	common.WriteJSON(w, h.log, http.StatusOK, common.ReservationToDTO(reservation))
}
