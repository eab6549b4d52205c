package delivery

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

func (r *Repository) Create(ctx context.Context, delivery entities.Delivery) (int64, error) {
	d := FromDomain(&delivery)

	query := `
		INSERT INTO deliveries (
			sale_id, client_id, status, status_before_incident,
			driver_id, driver_name, vehicle_id, vehicle_plate,
			scheduled_at, started_at, arrived_at, completed_at,
			last_lat, last_lng, last_location_at,
			incident_reason, incident_evidence, proof_signature_url, proof_photo_urls,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id
	`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		d.SaleID, d.ClientID, d.Status, d.StatusBeforeIncident,
		d.DriverID, d.DriverName, d.VehicleID, d.VehiclePlate,
		d.ScheduledAt, d.StartedAt, d.ArrivedAt, d.CompletedAt,
		d.LastLat, d.LastLng, d.LastLocationAt,
		d.IncidentReason, d.IncidentEvidence, d.ProofSignatureURL, d.ProofPhotoURLs,
		d.CreatedAt, d.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, errs.Conflict("sale", d.SaleID, "", d.Status, entities.CommandSchedule.String(),
				"sale already has an open delivery")
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return 0, errs.NotFound("sale", d.SaleID)
		}
		return 0, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Delivery, error) {
	query := `
		SELECT
			id, sale_id, client_id, status, status_before_incident,
			driver_id, driver_name, vehicle_id, vehicle_plate,
			scheduled_at, started_at, arrived_at, completed_at,
			last_lat, last_lng, last_location_at,
			incident_reason, incident_evidence, proof_signature_url, proof_photo_urls,
			created_at, updated_at
		FROM deliveries
		WHERE id = $1
	`

	var d DeliveryDB
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.SaleID, &d.ClientID, &d.Status, &d.StatusBeforeIncident,
		&d.DriverID, &d.DriverName, &d.VehicleID, &d.VehiclePlate,
		&d.ScheduledAt, &d.StartedAt, &d.ArrivedAt, &d.CompletedAt,
		&d.LastLat, &d.LastLng, &d.LastLocationAt,
		&d.IncidentReason, &d.IncidentEvidence, &d.ProofSignatureURL, &d.ProofPhotoURLs,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("delivery", id)
		}
		return nil, fmt.Errorf("unexpected delivery repository getbyid error: %w", err)
	}

	return ToDomain(&d), nil
}

// Update перезаписывает изменяемые поля доставки целиком.
func (r *Repository) Update(ctx context.Context, delivery entities.Delivery) error {
	d := FromDomain(&delivery)

	query := `
		UPDATE deliveries SET
			status = $2,
			status_before_incident = $3,
			driver_id = $4,
			driver_name = $5,
			vehicle_id = $6,
			vehicle_plate = $7,
			scheduled_at = $8,
			started_at = $9,
			arrived_at = $10,
			completed_at = $11,
			last_lat = $12,
			last_lng = $13,
			last_location_at = $14,
			incident_reason = $15,
			incident_evidence = $16,
			proof_signature_url = $17,
			proof_photo_urls = $18,
			updated_at = $19
		WHERE id = $1
	`

	result, err := r.querier.Exec(
		ctx,
		query,
		d.ID, d.Status, d.StatusBeforeIncident,
		d.DriverID, d.DriverName, d.VehicleID, d.VehiclePlate,
		d.ScheduledAt, d.StartedAt, d.ArrivedAt, d.CompletedAt,
		d.LastLat, d.LastLng, d.LastLocationAt,
		d.IncidentReason, d.IncidentEvidence, d.ProofSignatureURL, d.ProofPhotoURLs,
		d.UpdatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return errs.Conflict("delivery", d.ID, "", d.Status, "update", "sale already has an open delivery")
		}
		return fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return errs.NotFound("delivery", d.ID)
	}

	return nil
}
