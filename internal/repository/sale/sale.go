package sale

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const saleColumns = "id, client_id, warehouse_id, logistics_status, delivery_id, created_at, updated_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create сохраняет продажу вместе с позициями. Вызывается внутри транзакции.
func (r *Repository) Create(ctx context.Context, sale entities.Sale) (int64, error) {
	query := `
		INSERT INTO sales (client_id, warehouse_id, logistics_status, delivery_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		sale.ClientID,
		sale.WarehouseID,
		sale.LogisticsStatus.String(),
		sale.DeliveryID,
		sale.CreatedAt,
		sale.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("unexpected sale repository create error: %w", err)
	}

	if len(sale.Items) == 0 {
		return id, nil
	}

	builder := repository.QB.
		Insert("sale_items").
		Columns("sale_id", "line", "product_id", "quantity", "unit_price")
	for i, item := range sale.Items {
		builder = builder.Values(id, i+1, item.ProductID, item.Quantity, item.UnitPrice)
	}

	itemsQuery, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected sale repository create items error: %w", err)
	}
	if _, err := r.querier.Exec(ctx, itemsQuery, args...); err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return 0, errs.Validation("sale item quantity and price must be positive")
		}
		return 0, fmt.Errorf("unexpected sale repository create items error: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales
		WHERE id = $1`

	saleDB, err := scanSale(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("sale", id)
		}
		return nil, fmt.Errorf("unexpected sale repository getbyid error: %w", err)
	}

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToDomain(saleDB, items), nil
}

func (r *Repository) Update(ctx context.Context, modify entities.SaleModify) (*entities.Sale, error) {
	if modify.ID == nil {
		return nil, errs.Validation("sale id is required")
	}
	modifyDB := FromDomainModify(&modify)

	builder := repository.QB.
		Update("sales")

	if modifyDB.LogisticsStatus != nil {
		builder = builder.Set("logistics_status", modifyDB.LogisticsStatus)
	}
	if modifyDB.DeliveryID != nil {
		builder = builder.Set("delivery_id", modifyDB.DeliveryID)
	}
	if modifyDB.UpdatedAt != nil {
		builder = builder.Set("updated_at", modifyDB.UpdatedAt)
	} else {
		builder = builder.Set("updated_at", sq.Expr("NOW()"))
	}

	builder = builder.
		Where(sq.Eq{"id": modifyDB.ID}).
		Suffix("RETURNING " + saleColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected sale repository update error: %w", err)
	}

	saleDB, err := scanSale(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("sale", *modify.ID)
		}
		return nil, fmt.Errorf("unexpected sale repository update error: %w", err)
	}

	items, err := r.items(ctx, saleDB.ID)
	if err != nil {
		return nil, err
	}

	return ToDomain(saleDB, items), nil
}

func (r *Repository) items(ctx context.Context, saleID int64) ([]SaleItemDB, error) {
	query := `
		SELECT sale_id, line, product_id, quantity, unit_price
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY line`

	rows, err := r.querier.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("unexpected sale repository items error: %w", err)
	}
	defer rows.Close()

	items := make([]SaleItemDB, 0, 4)
	for rows.Next() {
		var item SaleItemDB
		if err := rows.Scan(&item.SaleID, &item.Line, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("unexpected sale repository items error: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected sale repository items error: %w", err)
	}

	return items, nil
}

func scanSale(row pgx.Row) (*SaleDB, error) {
	var saleDB SaleDB
	err := row.Scan(
		&saleDB.ID,
		&saleDB.ClientID,
		&saleDB.WarehouseID,
		&saleDB.LogisticsStatus,
		&saleDB.DeliveryID,
		&saleDB.CreatedAt,
		&saleDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &saleDB, nil
}
