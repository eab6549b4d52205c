package memory

import (
	"context"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) Append(ctx context.Context, events ...entities.TransitionEvent) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range events {
		if _, ok := s.events[event.ID]; ok {
			return errs.Conflict("event", 0, "", "", "append", "duplicate event id "+event.ID.String())
		}
	}

	for _, event := range events {
		s.eventSeq++
		s.events[event.ID] = storedEvent{seq: s.eventSeq, event: cloneEvent(event)}
		s.eventOrder = append(s.eventOrder, event.ID)
	}
	added := make(map[uuid.UUID]struct{}, len(events))
	for _, event := range events {
		added[event.ID] = struct{}{}
	}
	s.remember(ctx, func() {
		order := s.eventOrder[:0]
		for _, id := range s.eventOrder {
			if _, ok := added[id]; ok {
				delete(s.events, id)
				continue
			}
			order = append(order, id)
		}
		s.eventOrder = order
	})

	return nil
}

// ListByEntity история сущности в порядке фиксации.
func (r *EventRepository) ListByEntity(_ context.Context, entityType entities.EntityType, entityID int64) ([]entities.TransitionEvent, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]entities.TransitionEvent, 0)
	for _, id := range s.eventOrder {
		stored := s.events[id]
		if stored.event.EntityType == entityType && stored.event.EntityID == entityID {
			res = append(res, cloneEvent(stored.event))
		}
	}
	return res, nil
}

// ListUndispatched неразосланные события старше before в порядке фиксации.
func (r *EventRepository) ListUndispatched(_ context.Context, before time.Time, limit int) ([]entities.TransitionEvent, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]entities.TransitionEvent, 0)
	for _, id := range s.eventOrder {
		stored := s.events[id]
		if stored.event.DispatchedAt != nil || !stored.event.OccurredAt.Before(before) {
			continue
		}
		res = append(res, cloneEvent(stored.event))
		if limit > 0 && len(res) == limit {
			break
		}
	}
	return res, nil
}

func (r *EventRepository) MarkDispatched(_ context.Context, id uuid.UUID, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.events[id]
	if !ok {
		return errs.NotFound("event", id)
	}
	if stored.event.DispatchedAt == nil {
		stored.event.DispatchedAt = &at
		s.events[id] = stored
	}
	return nil
}

func cloneEvent(e entities.TransitionEvent) entities.TransitionEvent {
	res := e
	if e.DispatchedAt != nil {
		at := *e.DispatchedAt
		res.DispatchedAt = &at
	}
	if e.Snapshot.Quantity != nil {
		q := *e.Snapshot.Quantity
		res.Snapshot.Quantity = &q
	}
	if e.Snapshot.Location != nil {
		loc := *e.Snapshot.Location
		res.Snapshot.Location = &loc
	}
	if e.Snapshot.ProofPhotoURLs != nil {
		res.Snapshot.ProofPhotoURLs = append([]string(nil), e.Snapshot.ProofPhotoURLs...)
	}
	return res
}
