package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/keyresult"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/infrastructure/persistence/models"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/composables"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/mapping"
)

var (
	ErrKeyResultNotFound = fmt.Errorf("key result not found")
)

const (
	keyResultFindQuery = `
		SELECT id, objective_id, tenant_id, title, metric_type, current_value, target_value,
		       initial_value, unit, progress, weight, status, created_at, updated_at
		FROM key_results`
)

type KeyResultRepository struct{}

func NewKeyResultRepository() keyresult.Repository {
	return &KeyResultRepository{}
}

func (r *KeyResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*keyresult.KeyResult, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.queryKeyResults(ctx, keyResultFindQuery+" WHERE tenant_id = $1 AND id = $2", tenantID.String(), id.String())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrKeyResultNotFound
	}
	return rows[0], nil
}

func (r *KeyResultRepository) GetByObjective(ctx context.Context, objectiveID uuid.UUID) ([]*keyresult.KeyResult, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryKeyResults(
		ctx,
		keyResultFindQuery+" WHERE tenant_id = $1 AND objective_id = $2 ORDER BY title",
		tenantID.String(),
		objectiveID.String(),
	)
}

func (r *KeyResultRepository) Create(ctx context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO key_results (
			id, objective_id, tenant_id, title, metric_type, current_value, target_value,
			initial_value, unit, progress, weight, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		data.ID().String(),
		data.ObjectiveID().String(),
		data.TenantID().String(),
		data.Title(),
		string(data.MetricType()),
		data.CurrentValue(),
		data.TargetValue(),
		data.InitialValue(),
		mapping.PointerToSQLNullString(data.Unit()),
		data.Progress(),
		data.Weight(),
		string(data.Status()),
		data.CreatedAt(),
		data.UpdatedAt(),
	).Scan(&idStr); err != nil {
		return nil, errors.Wrap(err, "failed to insert key result")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *KeyResultRepository) Update(ctx context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE key_results
		SET title = $1, metric_type = $2, current_value = $3, target_value = $4,
		    initial_value = $5, unit = $6, progress = $7, weight = $8, status = $9,
		    updated_at = $10
		WHERE tenant_id = $11 AND id = $12
		RETURNING id
	`
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		data.Title(),
		string(data.MetricType()),
		data.CurrentValue(),
		data.TargetValue(),
		data.InitialValue(),
		mapping.PointerToSQLNullString(data.Unit()),
		data.Progress(),
		data.Weight(),
		string(data.Status()),
		data.UpdatedAt(),
		data.TenantID().String(),
		data.ID().String(),
	).Scan(&idStr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyResultNotFound
		}
		return nil, errors.Wrap(err, "failed to update key result")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *KeyResultRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM key_results WHERE tenant_id = $1 AND id = $2`, tenantID.String(), id.String())
	return err
}

func (r *KeyResultRepository) queryKeyResults(ctx context.Context, query string, args ...any) ([]*keyresult.KeyResult, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var keyResults []*keyresult.KeyResult
	for rows.Next() {
		var row models.KeyResult
		if err := rows.Scan(
			&row.ID,
			&row.ObjectiveID,
			&row.TenantID,
			&row.Title,
			&row.MetricType,
			&row.CurrentValue,
			&row.TargetValue,
			&row.InitialValue,
			&row.Unit,
			&row.Progress,
			&row.Weight,
			&row.Status,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan key result row")
		}
		entity, err := toDomainKeyResult(&row)
		if err != nil {
			return nil, err
		}
		keyResults = append(keyResults, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return keyResults, nil
}
