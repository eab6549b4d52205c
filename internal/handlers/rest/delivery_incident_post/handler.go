package delivery_incident_post

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

	var incidentDTO dto.DeliveryIncidentRequest
	err = json.NewDecoder(r.Body).Decode(&incidentDTO)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	delivery, err := h.service.ReportIncident(r.Context(), id, incidentDTO.Reason, incidentDTO.Evidence, actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Warn("Delivery incident reported",
		logger.NewField("delivery_id", delivery.ID),
		logger.NewField("reason", delivery.IncidentReason),
	)

	common.WriteJSON(w, h.log, http.StatusOK, common.DeliveryToDTO(delivery))
}
