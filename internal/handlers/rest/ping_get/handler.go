package ping_get

import (
	"net/http"

	"fulfillment/internal/dto"
	"fulfillment/internal/handlers/rest/common"
)

const serviceName = "fulfillment"

type Handler struct {
	log     handlerLogger
	storage string
}

// New storage имя активного драйвера хранилища, отдается для диагностики.
func New(log handlerLogger, storage string) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		storage: storage,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	message := "pong"
	res := dto.PingResponse{
		Message: &message,
		Service: serviceName,
		Storage: h.storage,
	}

	common.WriteJSON(w, h.log, http.StatusOK, res)
}
