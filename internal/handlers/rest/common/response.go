package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fulfillment/internal/dto"
	"fulfillment/internal/pkg/errs"
	"fulfillment/pkg/logger"
)

type responseLogger interface {
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

func WriteJSON(w http.ResponseWriter, log responseLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// BadRequest ответ на тело или параметры, которые не удалось разобрать.
func BadRequest(w http.ResponseWriter, log responseLogger, err error) {
	WriteJSON(w, log, http.StatusBadRequest, dto.Error{Error: err.Error()})
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError отвечает статусом по таксономии ошибок. Внутренние ошибки
// логируются, а клиенту уходит только общее сообщение.
func WriteError(w http.ResponseWriter, log responseLogger, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		log.With(
			logger.NewField("error", err),
		).Error("request failed")
		WriteJSON(w, log, status, dto.Error{Error: http.StatusText(status)})
		return
	}

	WriteJSON(w, log, status, errorBody(err))
}

func errorBody(err error) dto.Error {
	body := dto.Error{Error: err.Error()}

	var stateErr *errs.StateError
	if errors.As(err, &stateErr) {
		body.Entity = stateErr.Entity
		body.EntityID = stateErr.EntityID
		body.Current = stateErr.Current
		body.Attempted = stateErr.Attempted
		body.Command = stateErr.Command
	}

	var stockErr *errs.StockError
	if errors.As(err, &stockErr) {
		body.ProductID = stockErr.ProductID
		body.WarehouseID = stockErr.WarehouseID
		body.Requested = stockErr.Requested.String()
		body.Available = stockErr.Available.String()
	}

	var notFoundErr *errs.NotFoundError
	if errors.As(err, &notFoundErr) {
		body.Entity = notFoundErr.Entity
		if id, parseErr := strconv.ParseInt(notFoundErr.ID, 10, 64); parseErr == nil {
			body.EntityID = id
		}
	}

	return body
}
