package reservation_sweep

import (
	"context"
	"time"

	"fulfillment/pkg/logger"
)

// ReservationSweep освобождает резервы с истекшим сроком.
type ReservationSweep struct {
	log      handlerLogger
	service  Service
	interval time.Duration
	now      func() time.Time
}

func NewReservationSweep(log handlerLogger, service Service, interval time.Duration) *ReservationSweep {
	return &ReservationSweep{
		log:      log,
		service:  service,
		interval: interval,
		now:      time.Now,
	}
}

func (s *ReservationSweep) TTL() time.Duration {
	return s.interval
}

func (s *ReservationSweep) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	released, err := s.service.SweepExpired(ctxWithTimeout, s.now())

	if len(released) > 0 {
		s.log.With(
			logger.NewField("released_reservations", len(released)),
		).Info("reservation sweep")
	}

	return err
}

func (s *ReservationSweep) Info() string {
	return "reservation sweep"
}
