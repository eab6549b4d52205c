//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=fanout_test
package fanout

import (
	"context"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"

	"github.com/google/uuid"
)

type Publisher interface {
	Publish(ctx context.Context, scope entities.ChannelScope, announcement entities.Announcement) error
}

type EventRepository interface {
	ListUndispatched(ctx context.Context, before time.Time, limit int) ([]entities.TransitionEvent, error)
	MarkDispatched(ctx context.Context, id uuid.UUID, at time.Time) error
}

// DeliveryLedger журнал рассылки (событие, канал), общий для всех процессов.
// Перед публикацией канал захватывается. Захват старше staleBefore считается брошенным.
type DeliveryLedger interface {
	Claim(ctx context.Context, eventID uuid.UUID, target string, at, staleBefore time.Time) (entities.ClaimResult, error)
	ReleaseClaim(ctx context.Context, eventID uuid.UUID, target string) error
	MarkDelivered(ctx context.Context, eventID uuid.UUID, target string, at time.Time) error
	// Purge удаляет отметки старше before только у полностью разосланных событий
	Purge(ctx context.Context, before time.Time) (int64, error)
}

type Locker interface {
	Lock(ctx context.Context, key string) error
	Unlock(key string)
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
