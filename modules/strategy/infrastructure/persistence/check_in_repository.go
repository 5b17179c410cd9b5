package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/checkin"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/infrastructure/persistence/models"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/composables"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/mapping"
)

const (
	checkInFindQuery = `
		SELECT id, tenant_id, entity_type, entity_id, previous_value, new_value,
		       previous_progress, new_progress, status, note, source, as_of_date, created_at
		FROM check_ins`
)

type CheckInRepository struct{}

func NewCheckInRepository() checkin.Repository {
	return &CheckInRepository{}
}

func (r *CheckInRepository) GetByEntity(ctx context.Context, entityType checkin.EntityType, entityID uuid.UUID) ([]*checkin.CheckIn, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryCheckIns(
		ctx,
		checkInFindQuery+" WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3 ORDER BY as_of_date",
		tenantID.String(),
		string(entityType),
		entityID.String(),
	)
}

func (r *CheckInRepository) Create(ctx context.Context, data *checkin.CheckIn) (*checkin.CheckIn, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO check_ins (
			id, tenant_id, entity_type, entity_id, previous_value, new_value,
			previous_progress, new_progress, status, note, source, as_of_date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	if _, err := tx.Exec(
		ctx,
		query,
		data.ID().String(),
		data.TenantID().String(),
		string(data.EntityType()),
		data.EntityID().String(),
		data.PreviousValue(),
		data.NewValue(),
		data.PreviousProgress(),
		data.NewProgress(),
		mapping.ValueToSQLNullString(data.Status()),
		mapping.PointerToSQLNullString(data.Note()),
		data.Source(),
		data.AsOfDate(),
		data.CreatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert check-in")
	}
	return data, nil
}

func (r *CheckInRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM check_ins WHERE tenant_id = $1 AND id = $2`, tenantID.String(), id.String())
	return err
}

func (r *CheckInRepository) queryCheckIns(ctx context.Context, query string, args ...any) ([]*checkin.CheckIn, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var checkIns []*checkin.CheckIn
	for rows.Next() {
		var row models.CheckIn
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.EntityType,
			&row.EntityID,
			&row.PreviousValue,
			&row.NewValue,
			&row.PreviousProgress,
			&row.NewProgress,
			&row.Status,
			&row.Note,
			&row.Source,
			&row.AsOfDate,
			&row.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan check-in row")
		}
		entity, err := toDomainCheckIn(&row)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return checkIns, nil
}
