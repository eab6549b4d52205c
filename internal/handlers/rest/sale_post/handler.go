package sale_post

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
	actor, err := common.Actor(r)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	var saleCreateDTO dto.SaleCreate
	err = json.NewDecoder(r.Body).Decode(&saleCreateDTO)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	ttl, err := common.Duration(saleCreateDTO.ReservationTTL)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	items := make([]entities.SaleItem, 0, len(saleCreateDTO.Items))
	for _, item := range saleCreateDTO.Items {
		items = append(items, entities.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	sale, reservations, err := h.service.CreateSale(r.Context(), entities.SaleCreate{
		ClientID:       saleCreateDTO.ClientID,
		WarehouseID:    saleCreateDTO.WarehouseID,
		Items:          items,
		ReservationTTL: ttl,
	}, actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Sale created",
		logger.NewField("sale_id", sale.ID),
		logger.NewField("reservations", len(reservations)),
	)

	common.WriteJSON(w, h.log, http.StatusCreated, dto.SaleCreateResponse{
		Sale:         common.SaleToDTO(sale),
		Reservations: common.ReservationsToDTO(reservations),
	})
}
