package event

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, entity_type, entity_id, previous_status, new_status, reason,
	actor_type, actor_id, actor_name, occurred_at, snapshot, dispatched_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Append дописывает события в журнал. Порядок фиксации задает seq.
func (r *Repository) Append(ctx context.Context, events ...entities.TransitionEvent) error {
	if len(events) == 0 {
		return nil
	}

	builder := repository.QB.
		Insert("transition_events").
		Columns("id", "entity_type", "entity_id", "previous_status", "new_status", "reason",
			"actor_type", "actor_id", "actor_name", "occurred_at", "snapshot", "dispatched_at")
	for i := range events {
		e, err := FromDomain(&events[i])
		if err != nil {
			return err
		}
		builder = builder.Values(e.ID, e.EntityType, e.EntityID, e.PreviousStatus, e.NewStatus, e.Reason,
			e.ActorType, e.ActorID, e.ActorName, e.OccurredAt, e.Snapshot, e.DispatchedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected event repository append error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return errs.Conflict("event", 0, "", "", "append", "duplicate event id")
		}
		return fmt.Errorf("unexpected event repository append error: %w", err)
	}

	return nil
}

// ListByEntity история сущности в порядке фиксации.
func (r *Repository) ListByEntity(ctx context.Context, entityType entities.EntityType, entityID int64) ([]entities.TransitionEvent, error) {
	query := `SELECT ` + eventColumns + `
		FROM transition_events
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY seq`

	rows, err := r.querier.Query(ctx, query, entityType.String(), entityID)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository list by entity error: %w", err)
	}

	return collect(rows)
}

// ListUndispatched неразосланные события старше before в порядке фиксации.
func (r *Repository) ListUndispatched(ctx context.Context, before time.Time, limit int) ([]entities.TransitionEvent, error) {
	builder := repository.QB.
		Select(eventColumns).
		From("transition_events").
		Where("dispatched_at IS NULL").
		Where("occurred_at < ?", before).
		OrderBy("seq")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository list undispatched error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository list undispatched error: %w", err)
	}

	return collect(rows)
}

// MarkDispatched повторная отметка не меняет первое время рассылки.
func (r *Repository) MarkDispatched(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE transition_events
		SET dispatched_at = COALESCE(dispatched_at, $2)
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("unexpected event repository mark dispatched error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return errs.NotFound("event", id)
	}

	return nil
}

func collect(rows pgx.Rows) ([]entities.TransitionEvent, error) {
	defer rows.Close()

	res := make([]entities.TransitionEvent, 0, 8)
	for rows.Next() {
		var e EventDB
		err := rows.Scan(
			&e.ID,
			&e.EntityType,
			&e.EntityID,
			&e.PreviousStatus,
			&e.NewStatus,
			&e.Reason,
			&e.ActorType,
			&e.ActorID,
			&e.ActorName,
			&e.OccurredAt,
			&e.Snapshot,
			&e.DispatchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected event repository scan error: %w", err)
		}
		event, err := ToDomain(&e)
		if err != nil {
			return nil, err
		}
		res = append(res, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected event repository scan error: %w", err)
	}

	return res, nil
}
