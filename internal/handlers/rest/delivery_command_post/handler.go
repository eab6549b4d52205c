package delivery_command_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"fulfillment/internal/dto"
	"fulfillment/internal/entities"
	"fulfillment/internal/handlers/rest/common"
	"fulfillment/pkg/logger"

	"github.com/gorilla/mux"
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

// commands команды без параметров, доступные по пути /deliveries/{id}/{command}
var commands = map[string]entities.DeliveryCommand{
	"prepare": entities.CommandPrepare,
	"start":   entities.CommandStart,
	"cancel":  entities.CommandCancel,
	"fail":    entities.CommandFail,
	"resolve": entities.CommandResolveIncident,
}

var ErrUnknownCommand = errors.New("unknown command, expected one of prepare, start, cancel, fail, resolve")

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "id")
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	command, ok := commands[mux.Vars(r)["command"]]
	if !ok {
		common.WriteJSON(w, h.log, http.StatusNotFound, dto.Error{Error: ErrUnknownCommand.Error()})
		return
	}

	actor, err := common.Actor(r)
	if err != nil {
		common.BadRequest(w, h.log, err)
		return
	}

	var reasonDTO dto.ReasonRequest
	err = json.NewDecoder(r.Body).Decode(&reasonDTO)
	if err != nil && !errors.Is(err, io.EOF) {
		common.BadRequest(w, h.log, err)
		return
	}

	delivery, err := h.service.Execute(r.Context(), id, command, reasonDTO.Reason, actor)
	if err != nil {
		common.WriteError(w, h.log, err)
		return
	}

	h.log.Info("Delivery command executed",
		logger.NewField("delivery_id", delivery.ID),
		logger.NewField("command", command.String()),
		logger.NewField("status", delivery.Status.String()),
	)

	common.WriteJSON(w, h.log, http.StatusOK, common.DeliveryToDTO(delivery))
}
