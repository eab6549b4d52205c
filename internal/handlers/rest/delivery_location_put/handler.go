package delivery_location_put

import (
	"encoding/json"
	"net/http"

	"fulfillment/internal/dto"
	"fulfillment/internal/handlers/rest/common"
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

// ServeHTTP не пишет в лог успешные обновления, координаты приходят часто.
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

	var locationDTO dto.Location
	err = json.NewDecoder(r.Body).Decode(&locationDTO)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	delivery, err := h.service.TrackLocation(r.Context(), id, common.LocationToGeo(locationDTO), actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	common.WriteJSON(w, h.log, http.StatusOK, common.DeliveryToDTO(delivery))
}
