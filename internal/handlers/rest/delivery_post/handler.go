package delivery_post

import (
	"encoding/json"
	"net/http"

	"fulfillment/internal/dto"
	"fulfillment/internal/handlers/rest/common"
	"fulfillment/pkg/logger"

	"github.com/AlekSi/pointer"
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
	actor, err := common.Actor(r)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	var deliveryDTO dto.DeliveryCreate
	err = json.NewDecoder(r.Body).Decode(&deliveryDTO)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	// без scheduled_at доставка планируется на текущий момент
	delivery, err := h.service.Schedule(r.Context(), deliveryDTO.SaleID, pointer.Get(deliveryDTO.ScheduledAt), actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Delivery scheduled",
		logger.NewField("delivery_id", delivery.ID),
		logger.NewField("sale_id", delivery.SaleID),
	)

	common.WriteJSON(w, h.log, http.StatusCreated, common.DeliveryToDTO(delivery))
}
