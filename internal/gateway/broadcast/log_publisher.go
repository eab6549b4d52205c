package broadcast

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

// LogPublisher публикует анонсы в лог, когда брокер не настроен.
type LogPublisher struct {
	log publisherLogger
}

func NewLogPublisher(log publisherLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, scope entities.ChannelScope, announcement entities.Announcement) error {
	p.log.Info("Announcement published",
		logger.NewField("channel", scope.Name()),
		logger.NewField("event_id", announcement.EventID.String()),
		logger.NewField("event_type", announcement.EventType),
		logger.NewField("entity_id", announcement.EntityID),
		logger.NewField("new_status", announcement.NewStatus),
	)
	return nil
}
