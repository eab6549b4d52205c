package sale_logistics_status_post

import (
	"encoding/json"
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

	var overrideDTO dto.LogisticsStatusOverride
	err = json.NewDecoder(r.Body).Decode(&overrideDTO)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	sale, err := h.service.OverrideLogisticsStatus(r.Context(), id, overrideDTO.Status, overrideDTO.Reason, actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Logistics status overridden",
		logger.NewField("sale_id", sale.ID),
		logger.NewField("status", sale.LogisticsStatus.String()),
		logger.NewField("actor", actor.ID),
	)

	common.WriteJSON(w, h.log, http.StatusOK, common.SaleToDTO(sale))
}
