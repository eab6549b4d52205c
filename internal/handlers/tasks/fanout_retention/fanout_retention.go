package fanout_retention

import (
	"context"
	"time"

	"fulfillment/pkg/logger"
)

const purgeTimeout = time.Minute

// FanoutRetention удаляет старые отметки о доставке по cron-расписанию.
type FanoutRetention struct {
	log      handlerLogger
	service  Service
	schedule string
}

func NewFanoutRetention(log handlerLogger, service Service, schedule string) *FanoutRetention {
	return &FanoutRetention{
		log:      log,
		service:  service,
		schedule: schedule,
	}
}

func (r *FanoutRetention) Schedule() string {
	return r.schedule
}

// TTL не используется, задача запускается по Schedule.
func (r *FanoutRetention) TTL() time.Duration {
	return 0
}

func (r *FanoutRetention) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()

	purged, err := r.service.PurgeDelivered(ctxWithTimeout)
	if err != nil {
		return err
	}

	r.log.With(
		logger.NewField("purged_marks", purged),
	).Info("fanout retention")

	return nil
}

func (r *FanoutRetention) Info() string {
	return "fanout retention"
}
