package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/entities"

	"github.com/IBM/sarama"
)

const (
	headerChannel   = "channel"
	headerEventType = "event_type"
)

// KafkaPublisher пишет анонсы в kafka. Общий поток событий уходит в EventsTopic
// с ключом сущности, остальные каналы в AnnouncementsTopic с ключом канала.
// Повторы выполняет вызывающая сторона.
type KafkaPublisher struct {
	producer           producer
	announcementsTopic string
	eventsTopic        string
}

func NewKafkaPublisher(producer producer, announcementsTopic, eventsTopic string) *KafkaPublisher {
	return &KafkaPublisher{
		producer:           producer,
		announcementsTopic: announcementsTopic,
		eventsTopic:        eventsTopic,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, scope entities.ChannelScope, announcement entities.Announcement) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(announcement)
	if err != nil {
		return fmt.Errorf("gateway broadcast, encode announcement %s: %w", announcement.EventID, err)
	}

	topic, key := p.route(scope, announcement)
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerChannel), Value: []byte(scope.Name())},
			{Key: []byte(headerEventType), Value: []byte(announcement.EventType)},
		},
	}

	err = p.executeWithMetrics(topic, func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		return fmt.Errorf("gateway broadcast, publish to %s: %w", scope.Name(), err)
	}
	return nil
}

func (p *KafkaPublisher) route(scope entities.ChannelScope, announcement entities.Announcement) (topic, key string) {
	if scope.Kind == entities.ScopeStream {
		return p.eventsTopic, announcement.EntityType + ":" + entities.FormatID(announcement.EntityID)
	}
	return p.announcementsTopic, scope.Name()
}

func (p *KafkaPublisher) executeWithMetrics(topic string, fn func() error) error {
	start := time.Now()
	err := fn()

	result := "ok"
	if err != nil {
		result = "error"
	}
	GatewayRequestDuration.WithLabelValues(topic, result).Observe(time.Since(start).Seconds())

	return err
}
