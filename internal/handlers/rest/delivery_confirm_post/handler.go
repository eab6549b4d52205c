package delivery_confirm_post

import (
	"encoding/json"
	"net/http"

	"fulfillment/internal/dto"
	"fulfillment/internal/entities"
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

	var confirmDTO dto.DeliveryConfirmRequest
	err = json.NewDecoder(r.Body).Decode(&confirmDTO)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	delivery, err := h.service.Confirm(r.Context(), id, entities.Proof{
		SignatureURL: confirmDTO.SignatureURL,
		PhotoURLs:    confirmDTO.PhotoURLs,
	}, actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Delivery confirmed",
		logger.NewField("delivery_id", delivery.ID),
		logger.NewField("sale_id", delivery.SaleID),
	)

	common.WriteJSON(w, h.log, http.StatusOK, common.DeliveryToDTO(delivery))
}
