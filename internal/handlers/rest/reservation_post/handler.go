package reservation_post

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

	var reservationDTO dto.ReservationCreate
	err = json.NewDecoder(r.Body).Decode(&reservationDTO)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	ttl, err := common.Duration(reservationDTO.TTL)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	reservation, err := h.service.Reserve(r.Context(), entities.ReserveRequest{
		OrderID:     reservationDTO.OrderID,
		ProductID:   reservationDTO.ProductID,
		WarehouseID: reservationDTO.WarehouseID,
		Quantity:    reservationDTO.Quantity,
		TTL:         ttl,
	}, actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Stock reserved",
		logger.NewField("reservation_id", reservation.ID),
		logger.NewField("order_id", reservation.OrderID),
	)

	common.WriteJSON(w, h.log, http.StatusCreated, common.ReservationToDTO(reservation))
}
