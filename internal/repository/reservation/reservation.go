package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const reservationColumns = "id, order_id, product_id, warehouse_id, quantity, status, release_reason, created_at, expires_at, updated_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, reservation entities.Reservation) (int64, error) {
	query := `
		INSERT INTO reservations (order_id, product_id, warehouse_id, quantity, status, release_reason, created_at, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		reservation.OrderID,
		reservation.ProductID,
		reservation.WarehouseID,
		reservation.Quantity,
		reservation.Status.String(),
		reservation.ReleaseReason,
		reservation.CreatedAt,
		reservation.ExpiresAt,
		reservation.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return 0, errs.Validation("reservation quantity must be positive")
		}
		return 0, fmt.Errorf("unexpected reservation repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1`

	reservationDB, err := scanReservation(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("reservation", id)
		}
		return nil, fmt.Errorf("unexpected reservation repository getbyid error: %w", err)
	}

	return ToDomain(reservationDB), nil
}

func (r *Repository) Update(ctx context.Context, modify entities.ReservationModify) (*entities.Reservation, error) {
	if modify.ID == nil {
		return nil, errs.Validation("reservation id is required")
	}
	modifyDB := FromDomainModify(&modify)

	builder := repository.QB.
		Update("reservations")

	if modifyDB.Status != nil {
		builder = builder.Set("status", modifyDB.Status)
	}
	if modifyDB.ReleaseReason != nil {
		builder = builder.Set("release_reason", modifyDB.ReleaseReason)
	}
	if modifyDB.UpdatedAt != nil {
		builder = builder.Set("updated_at", modifyDB.UpdatedAt)
	} else {
		builder = builder.Set("updated_at", sq.Expr("NOW()"))
	}

	builder = builder.
		Where(sq.Eq{"id": modifyDB.ID}).
		Suffix("RETURNING " + reservationColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected reservation repository update error: %w", err)
	}

	reservationDB, err := scanReservation(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("reservation", *modify.ID)
		}
		return nil, fmt.Errorf("unexpected reservation repository update error: %w", err)
	}

	return ToDomain(reservationDB), nil
}

func (r *Repository) ListByOrder(ctx context.Context, orderID int64) ([]entities.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected reservation repository list by order error: %w", err)
	}
	defer rows.Close()

	reservations := make([]ReservationDB, 0, 4)
	for rows.Next() {
		reservationDB, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected reservation repository list by order error: %w", err)
		}
		reservations = append(reservations, *reservationDB)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected reservation repository list by order error: %w", err)
	}

	return ToDomainList(reservations), nil
}

func (r *Repository) SumActive(ctx context.Context, productID, warehouseID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM reservations
		WHERE product_id = $1 AND warehouse_id = $2 AND status = $3
	`

	var sum decimal.Decimal
	err := r.querier.QueryRow(ctx, query, productID, warehouseID, entities.ReservationActive.String()).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unexpected reservation repository sum active error: %w", err)
	}

	return sum, nil
}

// ListExpiredIDs активные резервы с истекшим сроком, сначала самые старые.
func (r *Repository) ListExpiredIDs(ctx context.Context, now time.Time, limit int) ([]int64, error) {
	builder := repository.QB.
		Select("id").
		From("reservations").
		Where(sq.Eq{"status": entities.ReservationActive.String()}).
		Where(sq.LtOrEq{"expires_at": now}).
		OrderBy("expires_at", "id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected reservation repository list expired error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected reservation repository list expired error: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("unexpected reservation repository list expired error: %w", err)
	}

	return ids, nil
}

func scanReservation(row pgx.Row) (*ReservationDB, error) {
	var reservationDB ReservationDB
	err := row.Scan(
		&reservationDB.ID,
		&reservationDB.OrderID,
		&reservationDB.ProductID,
		&reservationDB.WarehouseID,
		&reservationDB.Quantity,
		&reservationDB.Status,
		&reservationDB.ReleaseReason,
		&reservationDB.CreatedAt,
		&reservationDB.ExpiresAt,
		&reservationDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservationDB, nil
}
