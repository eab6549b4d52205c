package delivery_assign_post

import (
	"encoding/json"
	"net/http"

	"fulfillment/internal/dto"
	"fulfillment/internal/entities"
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

	var deliveryAssignDTO dto.DeliveryAssignRequest
	err = json.NewDecoder(r.Body).Decode(&deliveryAssignDTO)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	driver := entities.Driver{
		ID:   deliveryAssignDTO.DriverID,
		Name: deliveryAssignDTO.DriverName,
	}
	var vehicle *entities.Vehicle
	if deliveryAssignDTO.VehicleID != nil || deliveryAssignDTO.VehiclePlate != nil {
		vehicle = &entities.Vehicle{
			ID:    pointer.Get(deliveryAssignDTO.VehicleID),
			Plate: pointer.Get(deliveryAssignDTO.VehiclePlate),
		}
	}

	delivery, err := h.service.Assign(r.Context(), id, driver, vehicle, actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Driver assigned",
		logger.NewField("delivery_id", delivery.ID),
		logger.NewField("driver_id", driver.ID),
	)

	common.WriteJSON(w, h.log, http.StatusOK, common.DeliveryToDTO(delivery))
}
