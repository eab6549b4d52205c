package fanout

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/entities"

	"github.com/google/uuid"
)

// Ledger журнал рассылки (событие, канал) в postgres. Строка без delivered_at
// означает, что канал захвачен и публикация идет.
type Ledger struct {
	querier Querier
}

func New(querier Querier) *Ledger {
	return &Ledger{
		querier: querier,
	}
}

// Claim захватывает канал вставкой строки. Брошенный захват (claimed_at < staleBefore)
// перехватывается тем же запросом, доставленный канал не трогается.
func (l *Ledger) Claim(
	ctx context.Context,
	eventID uuid.UUID,
	target string,
	at, staleBefore time.Time,
) (entities.ClaimResult, error) {
	query := `
		WITH claimed AS (
			INSERT INTO fanout_deliveries (event_id, target, claimed_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (event_id, target) DO UPDATE
				SET claimed_at = EXCLUDED.claimed_at
				WHERE fanout_deliveries.delivered_at IS NULL
				  AND fanout_deliveries.claimed_at < $4
			RETURNING 1
		)
		SELECT
			EXISTS (SELECT 1 FROM claimed),
			EXISTS (
				SELECT 1 FROM fanout_deliveries
				WHERE event_id = $1 AND target = $2 AND delivered_at IS NOT NULL
			)
	`

	var claimed, delivered bool
	if err := l.querier.QueryRow(ctx, query, eventID, target, at, staleBefore).Scan(&claimed, &delivered); err != nil {
		return 0, fmt.Errorf("unexpected fanout ledger claim error: %w", err)
	}

	switch {
	case claimed:
		return entities.ClaimAcquired, nil
	case delivered:
		return entities.ClaimDelivered, nil
	default:
		return entities.ClaimBusy, nil
	}
}

// ReleaseClaim снимает захват после неудачной публикации.
func (l *Ledger) ReleaseClaim(ctx context.Context, eventID uuid.UUID, target string) error {
	query := `
		DELETE FROM fanout_deliveries
		WHERE event_id = $1 AND target = $2 AND delivered_at IS NULL
	`

	if _, err := l.querier.Exec(ctx, query, eventID, target); err != nil {
		return fmt.Errorf("unexpected fanout ledger release claim error: %w", err)
	}

	return nil
}

func (l *Ledger) IsDelivered(ctx context.Context, eventID uuid.UUID, target string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM fanout_deliveries
			WHERE event_id = $1 AND target = $2 AND delivered_at IS NOT NULL
		)
	`

	var delivered bool
	if err := l.querier.QueryRow(ctx, query, eventID, target).Scan(&delivered); err != nil {
		return false, fmt.Errorf("unexpected fanout ledger is delivered error: %w", err)
	}

	return delivered, nil
}

// MarkDelivered фиксирует доставку. Повторная отметка сохраняет первое время.
func (l *Ledger) MarkDelivered(ctx context.Context, eventID uuid.UUID, target string, at time.Time) error {
	query := `
		INSERT INTO fanout_deliveries (event_id, target, claimed_at, delivered_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (event_id, target) DO UPDATE
			SET delivered_at = COALESCE(fanout_deliveries.delivered_at, EXCLUDED.delivered_at)
	`

	if _, err := l.querier.Exec(ctx, query, eventID, target, at); err != nil {
		return fmt.Errorf("unexpected fanout ledger mark delivered error: %w", err)
	}

	return nil
}

// Purge удаляет отметки старше before у разосланных событий и возвращает их количество.
func (l *Ledger) Purge(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM fanout_deliveries f
		USING transition_events e
		WHERE e.id = f.event_id
		  AND e.dispatched_at IS NOT NULL
		  AND f.delivered_at < $1
	`

	result, err := l.querier.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("unexpected fanout ledger purge error: %w", err)
	}

	return result.RowsAffected(), nil
}
