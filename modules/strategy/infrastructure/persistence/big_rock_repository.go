package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/bigrock"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/infrastructure/persistence/models"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/composables"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/mapping"
)

var (
	ErrBigRockNotFound = fmt.Errorf("big rock not found")
)

const (
	bigRockFindQuery = `
		SELECT id, tenant_id, title, objective_id, team_id, quarter, year,
		       completion_percentage, status, created_at, updated_at
		FROM big_rocks`
)

type BigRockRepository struct{}

func NewBigRockRepository() bigrock.Repository {
	return &BigRockRepository{}
}

func (r *BigRockRepository) GetByID(ctx context.Context, id uuid.UUID) (*bigrock.BigRock, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.queryBigRocks(ctx, bigRockFindQuery+" WHERE tenant_id = $1 AND id = $2", tenantID.String(), id.String())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrBigRockNotFound
	}
	return rows[0], nil
}

func (r *BigRockRepository) GetByTenant(ctx context.Context) ([]*bigrock.BigRock, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryBigRocks(ctx, bigRockFindQuery+" WHERE tenant_id = $1 ORDER BY title", tenantID.String())
}

func (r *BigRockRepository) Create(ctx context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO big_rocks (
			id, tenant_id, title, objective_id, team_id, quarter, year,
			completion_percentage, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		data.ID().String(),
		data.TenantID().String(),
		data.Title(),
		mapping.UUIDToSQLNullString(data.ObjectiveID()),
		mapping.UUIDToSQLNullString(data.TeamID()),
		mapping.PointerToSQLNullInt32(data.Quarter()),
		data.Year(),
		data.CompletionPercentage(),
		string(data.Status()),
		data.CreatedAt(),
		data.UpdatedAt(),
	).Scan(&idStr); err != nil {
		return nil, errors.Wrap(err, "failed to insert big rock")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *BigRockRepository) Update(ctx context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE big_rocks
		SET title = $1, objective_id = $2, team_id = $3, quarter = $4, year = $5,
		    completion_percentage = $6, status = $7, updated_at = $8
		WHERE tenant_id = $9 AND id = $10
		RETURNING id
	`
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		data.Title(),
		mapping.UUIDToSQLNullString(data.ObjectiveID()),
		mapping.UUIDToSQLNullString(data.TeamID()),
		mapping.PointerToSQLNullInt32(data.Quarter()),
		data.Year(),
		data.CompletionPercentage(),
		string(data.Status()),
		data.UpdatedAt(),
		data.TenantID().String(),
		data.ID().String(),
	).Scan(&idStr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBigRockNotFound
		}
		return nil, errors.Wrap(err, "failed to update big rock")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *BigRockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM big_rocks WHERE tenant_id = $1 AND id = $2`, tenantID.String(), id.String())
	return err
}

func (r *BigRockRepository) queryBigRocks(ctx context.Context, query string, args ...any) ([]*bigrock.BigRock, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var bigRocks []*bigrock.BigRock
	for rows.Next() {
		var row models.BigRock
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.Title,
			&row.ObjectiveID,
			&row.TeamID,
			&row.Quarter,
			&row.Year,
			&row.CompletionPercentage,
			&row.Status,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan big rock row")
		}
		entity, err := toDomainBigRock(&row)
		if err != nil {
			return nil, err
		}
		bigRocks = append(bigRocks, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return bigRocks, nil
}
