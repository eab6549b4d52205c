package driver_action_received

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/service/driveraction"
	"fulfillment/pkg/logger"

	"github.com/IBM/sarama"
)

type Handler struct {
	driverActionService      Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, driverActionService Service, timeout time.Duration) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "driver.action.received"),
	)

	return &Handler{
		driverActionService:      driverActionService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("driver.action.received: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("driver.action.received: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать (отмена контекста).
// Сообщение в этом случае не помечается и будет прочитано повторно.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var msg actionMessage
	err := json.Unmarshal(message.Value, &msg)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("driver.action.received handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("delivery", msg.DeliveryID),
		logger.NewField("driver", msg.DriverID),
		logger.NewField("action", msg.Action),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("driver.action.received processing")

	delivery, err := h.driverActionService.ProcessDriverAction(ctx, msg.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.action.received handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, errs.ErrValidation):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.action.received handler invalid action")

		case errors.Is(err, driveraction.ErrDriverMismatch):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.action.received handler action from another driver")

		case errors.Is(err, errs.ErrIllegalTransition), errors.Is(err, errs.ErrInvalidState), errors.Is(err, errs.ErrConflict):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.action.received handler transition rejected")

		case errors.Is(err, errs.ErrNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.action.received handler unknown delivery")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("driver.action.received handler failed to process action")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("status", delivery.Status.String()),
	).Info("driver.action.received: processed")

	sess.MarkMessage(message, "")
	return false
}
