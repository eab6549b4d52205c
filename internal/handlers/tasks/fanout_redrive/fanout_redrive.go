package fanout_redrive

import (
	"context"
	"time"

	"fulfillment/pkg/logger"
)

// FanoutRedrive повторно рассылает события, которые не были разосланы вовремя
// (переполненная очередь, падение процесса, недоступный канал).
type FanoutRedrive struct {
	log      handlerLogger
	service  Service
	interval time.Duration
}

func NewFanoutRedrive(log handlerLogger, service Service, interval time.Duration) *FanoutRedrive {
	return &FanoutRedrive{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (r *FanoutRedrive) TTL() time.Duration {
	return r.interval
}

func (r *FanoutRedrive) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	dispatched, err := r.service.Redrive(ctxWithTimeout)
	if dispatched > 0 {
		r.log.With(
			logger.NewField("dispatched_events", dispatched),
		).Info("fanout redrive")
	}
	if err != nil {
		// неудачные события останутся неразосланными до следующего запуска
		r.log.With(
			logger.NewField("error", err),
		).Warn("fanout redrive incomplete")
	}

	return nil
}

func (r *FanoutRedrive) Info() string {
	return "fanout redrive"
}
