package memory

import (
	"context"
	"time"

	"fulfillment/internal/entities"

	"github.com/google/uuid"
)

type fanoutKey struct {
	eventID uuid.UUID
	target  string
}

type fanoutRecord struct {
	claimedAt   time.Time
	deliveredAt *time.Time
}

// FanoutLedger журнал рассылки (событие, канал). Запись без deliveredAt означает захват.
type FanoutLedger struct {
	store *Store
}

func NewFanoutLedger(store *Store) *FanoutLedger {
	return &FanoutLedger{store: store}
}

func (l *FanoutLedger) Claim(
	_ context.Context,
	eventID uuid.UUID,
	target string,
	at, staleBefore time.Time,
) (entities.ClaimResult, error) {
	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fanoutKey{eventID, target}
	record, ok := s.fanout[key]
	switch {
	case ok && record.deliveredAt != nil:
		return entities.ClaimDelivered, nil
	case ok && !record.claimedAt.Before(staleBefore):
		return entities.ClaimBusy, nil
	}

	s.fanout[key] = fanoutRecord{claimedAt: at}
	return entities.ClaimAcquired, nil
}

func (l *FanoutLedger) ReleaseClaim(_ context.Context, eventID uuid.UUID, target string) error {
	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fanoutKey{eventID, target}
	if record, ok := s.fanout[key]; ok && record.deliveredAt == nil {
		delete(s.fanout, key)
	}
	return nil
}

func (l *FanoutLedger) IsDelivered(_ context.Context, eventID uuid.UUID, target string) (bool, error) {
	s := l.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.fanout[fanoutKey{eventID, target}]
	return ok && record.deliveredAt != nil, nil
}

func (l *FanoutLedger) MarkDelivered(_ context.Context, eventID uuid.UUID, target string, at time.Time) error {
	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fanoutKey{eventID, target}
	record, ok := s.fanout[key]
	if !ok {
		record.claimedAt = at
	}
	if record.deliveredAt == nil {
		record.deliveredAt = &at
	}
	s.fanout[key] = record
	return nil
}

// Purge удаляет отметки старше before у разосланных событий и возвращает их количество.
func (l *FanoutLedger) Purge(_ context.Context, before time.Time) (int64, error) {
	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for key, record := range s.fanout {
		if record.deliveredAt == nil || !record.deliveredAt.Before(before) {
			continue
		}
		stored, ok := s.events[key.eventID]
		if !ok || stored.event.DispatchedAt == nil {
			continue
		}
		delete(s.fanout, key)
		purged++
	}
	return purged, nil
}
