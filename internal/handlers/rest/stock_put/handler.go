package stock_put

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

	var stockDTO dto.StockPut
	err = json.NewDecoder(r.Body).Decode(&stockDTO)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	level, err := h.service.SetOnHand(r.Context(), productID, warehouseID, stockDTO.OnHand)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Stock level updated",
		logger.NewField("product_id", level.ProductID),
		logger.NewField("warehouse_id", level.WarehouseID),
		logger.NewField("on_hand", level.OnHand.String()),
	)

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
