package stock

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/repository"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Get в транзакции блокирует строку остатка до ее завершения.
func (r *Repository) Get(ctx context.Context, productID, warehouseID int64) (*entities.StockLevel, error) {
	query := `
		SELECT product_id, warehouse_id, on_hand, updated_at
		FROM stock_levels
		WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE
	`

	var level entities.StockLevel
	err := r.querier.QueryRow(ctx, query, productID, warehouseID).Scan(
		&level.ProductID,
		&level.WarehouseID,
		&level.OnHand,
		&level.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("stock", fmt.Sprintf("%d:%d", productID, warehouseID))
		}
		return nil, fmt.Errorf("unexpected stock repository get error: %w", err)
	}

	return &level, nil
}

func (r *Repository) Upsert(ctx context.Context, level entities.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, warehouse_id, on_hand, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, updated_at = EXCLUDED.updated_at
	`

	_, err := r.querier.Exec(ctx, query, level.ProductID, level.WarehouseID, level.OnHand, level.UpdatedAt)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return errs.Validation("stock on hand must not be negative")
		}
		return fmt.Errorf("unexpected stock repository upsert error: %w", err)
	}

	return nil
}
