package stock_get

import (
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
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	productID, err := common.PathID(r, "product_id")
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}
	warehouseID, err := common.PathID(r, "warehouse_id")
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	availability, err := h.service.Availability(r.Context(), productID, warehouseID)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	common.WriteJSON(w, h.log, http.StatusOK, dto.Stock{
		ProductID:   availability.ProductID,
		WarehouseID: availability.WarehouseID,
		OnHand:      availability.OnHand,
		Reserved:    availability.Reserved,
		Available:   availability.Available,
	})
}
